// Command sqlexpr parses SQL scalar expressions and prints their canonical form.
//
// Expressions are taken from the command line, or from standard input one per line
// when no arguments are given:
//
//	sqlexpr 'price * (1 - ?)' '"a""b" + 1'
//	sqlexpr -json 't.qty * -2'
//	cat exprs.txt | sqlexpr -no-grouping
//	sqlexpr -i
//
// The exit status is 1 if any expression fails to parse.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"

	sqlexpr "github.com/nlstn/go-sqlexpr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type printer struct {
	parser *sqlexpr.Parser
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	asJSON bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sqlexpr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print each expression tree as JSON")
	noGrouping := fs.Bool("no-grouping", false, "Reject parenthesized sub-expressions")
	maxDepth := fs.Int("max-depth", sqlexpr.DefaultMaxDepth, "Maximum parenthesis nesting")
	interactive := fs.Bool("i", false, "Read expressions from an interactive prompt")
	verbose := fs.Bool("v", false, "Log parse diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	p := &printer{
		parser: sqlexpr.New(
			sqlexpr.WithLogger(logger),
			sqlexpr.WithGrouping(!*noGrouping),
			sqlexpr.WithMaxDepth(*maxDepth),
		),
		logger: logger,
		stdout: stdout,
		stderr: stderr,
		asJSON: *asJSON,
	}

	if *interactive {
		return p.repl()
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		var err error
		inputs, err = readLines(stdin)
		if err != nil {
			logger.Error("Error reading standard input", "error", err)
			return 1
		}
	}
	return p.batch(inputs)
}

// batch parses all inputs and prints the successful ones as a single table.
func (p *printer) batch(inputs []string) int {
	table := newTable(p.stdout)
	status := 0
	rows := 0
	for _, input := range inputs {
		expr, ok := p.parse(input)
		if !ok {
			status = 1
			continue
		}
		if p.asJSON {
			if err := p.printJSON(expr); err != nil {
				return 1
			}
			continue
		}
		table.Append(row(expr))
		rows++
	}

	if rows > 0 {
		table.Render()
	}
	return status
}

// repl reads expressions from a line-editing prompt until EOF.
func (p *printer) repl() int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqlexpr> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          p.stdout,
		Stderr:          p.stderr,
	})
	if err != nil {
		p.logger.Error("Error starting prompt", "error", err)
		return 1
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return 0
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		expr, ok := p.parse(line)
		if !ok {
			continue
		}
		if p.asJSON {
			if err := p.printJSON(expr); err != nil {
				return 1
			}
			continue
		}
		table := newTable(p.stdout)
		table.Append(row(expr))
		table.Render()
	}
}

func (p *printer) parse(input string) (*sqlexpr.Expression, bool) {
	expr, err := p.parser.Parse(context.Background(), input)
	if err != nil {
		printError(p.stderr, input, err)
		return nil, false
	}
	return expr, true
}

func (p *printer) printJSON(expr *sqlexpr.Expression) error {
	data, err := json.Marshal(expr)
	if err != nil {
		p.logger.Error("Error encoding expression", "error", err)
		return err
	}
	fmt.Fprintln(p.stdout, string(data))
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Expression", "Terms", "Parameters", "Fingerprint"})
	table.SetAutoWrapText(false)
	return table
}

func row(expr *sqlexpr.Expression) []string {
	return []string{
		sqlexpr.Canonical(expr),
		strconv.Itoa(expr.Len()),
		strconv.Itoa(len(sqlexpr.Parameters(expr))),
		fmt.Sprintf("%016x", sqlexpr.Fingerprint(expr)),
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// printError shows the input with a caret under the failing position.
func printError(w io.Writer, input string, err error) {
	var perr *sqlexpr.ParseError
	if !errors.As(err, &perr) || perr.Pos < 0 || perr.Pos > len(input) {
		fmt.Fprintf(w, "%s\n%v\n", input, err)
		return
	}
	fmt.Fprintf(w, "%s\n%s^\n%v\n", input, strings.Repeat(" ", perr.Pos), err)
}
