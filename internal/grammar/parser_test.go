package grammar

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlstn/go-sqlexpr/ast"
	"github.com/nlstn/go-sqlexpr/internal/columnref"
	"github.com/nlstn/go-sqlexpr/internal/lexer"
)

var defaultConfig = Config{Grouping: true}

func mustParse(t *testing.T, input string) *ast.Expression {
	t.Helper()
	expr, err := NewParser(input, 0, defaultConfig).ParseComplete()
	require.NoError(t, err, input)
	require.NotNil(t, expr)
	return expr
}

// singleFactor returns the only factor of a one-term, one-factor expression.
func singleFactor(t *testing.T, expr *ast.Expression) ast.Factor {
	t.Helper()
	require.Empty(t, expr.Rest, "expected a single term")
	require.Empty(t, expr.First.Rest, "expected a single factor")
	return expr.First.First
}

func parseError(t *testing.T, err error) *lexer.ParseError {
	t.Helper()
	var perr *lexer.ParseError
	require.True(t, errors.As(err, &perr), "expected *lexer.ParseError, got %T: %v", err, err)
	return perr
}

func TestParseNumericLiteral(t *testing.T) {
	values := []string{"0", "7", "123", "9223372036854775807"}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		values = append(values, strconv.FormatInt(rng.Int63(), 10))
	}

	for _, s := range values {
		f := singleFactor(t, mustParse(t, s))
		assert.Equal(t, ast.SignNone, f.Sign, s)
		want, _ := strconv.ParseInt(s, 10, 64)
		assert.Equal(t, &ast.NumericLiteral{Value: want}, f.Operand, s)
	}
}

func TestParseNegativeNumericLiteral(t *testing.T) {
	f := singleFactor(t, mustParse(t, "-123"))
	assert.Equal(t, ast.SignMinus, f.Sign)
	assert.Equal(t, &ast.NumericLiteral{Value: 123}, f.Operand)
}

func TestParsePositiveSign(t *testing.T) {
	f := singleFactor(t, mustParse(t, "+ 5"))
	assert.Equal(t, ast.SignPlus, f.Sign)
	assert.Equal(t, &ast.NumericLiteral{Value: 5}, f.Operand)
}

func TestParseDoubleSignFails(t *testing.T) {
	_, err := NewParser("--5", 0, defaultConfig).ParseComplete()
	require.ErrorIs(t, err, lexer.ErrExpectedOperand)
	assert.Equal(t, 1, parseError(t, err).Pos)
}

func TestParseStringLiteral(t *testing.T) {
	f := singleFactor(t, mustParse(t, `"literal"`))
	assert.Equal(t, &ast.StringLiteral{Value: "literal"}, f.Operand)
}

func TestParseStringLiteralDoubledQuotes(t *testing.T) {
	f := singleFactor(t, mustParse(t, `"lite""ral"""`))
	lit, ok := f.Operand.(*ast.StringLiteral)
	require.True(t, ok, "expected *ast.StringLiteral, got %T", f.Operand)
	assert.Equal(t, `lite"ral"`, lit.Value)
	assert.Len(t, lit.Value, 9)
}

func TestParseDynamicParameter(t *testing.T) {
	f := singleFactor(t, mustParse(t, "?"))
	param, ok := f.Operand.(*ast.DynamicParameter)
	require.True(t, ok, "expected *ast.DynamicParameter, got %T", f.Operand)
	assert.Equal(t, 1, param.Ordinal)
}

func TestParseDynamicParameterOrdinals(t *testing.T) {
	expr := mustParse(t, "? + ? * (? - col)")
	params := ast.Parameters(expr)
	require.Len(t, params, 3)
	for i, p := range params {
		assert.Equal(t, i+1, p.Ordinal)
	}
}

func TestParseColumnReference(t *testing.T) {
	tests := []struct {
		input string
		want  *ast.ColumnReference
	}{
		{"column", &ast.ColumnReference{Name: "column"}},
		{"table.column", &ast.ColumnReference{Table: "table", Name: "column"}},
	}

	for _, tt := range tests {
		f := singleFactor(t, mustParse(t, tt.input))
		col, ok := f.Operand.(*ast.ColumnReference)
		require.True(t, ok, "expected *ast.ColumnReference, got %T", f.Operand)
		assert.Equal(t, "column", col.Name)
		assert.Equal(t, tt.want, col)
	}
}

func TestParseDecimalLiteral(t *testing.T) {
	f := singleFactor(t, mustParse(t, "-0.25"))
	assert.Equal(t, ast.SignMinus, f.Sign)
	d, ok := f.Operand.(*ast.DecimalLiteral)
	require.True(t, ok, "expected *ast.DecimalLiteral, got %T", f.Operand)
	assert.Equal(t, "0.25", d.Value.String())
}

func TestParsePrecedence(t *testing.T) {
	expr := mustParse(t, "a + b * c")

	require.Len(t, expr.Rest, 1)
	assert.Equal(t, ast.Add, expr.Rest[0].Op)
	assert.Empty(t, expr.First.Rest, "left term must hold only a")
	assert.Equal(t, &ast.ColumnReference{Name: "a"}, expr.First.First.Operand)

	right := expr.Rest[0].Term
	require.Len(t, right.Rest, 1)
	assert.Equal(t, &ast.ColumnReference{Name: "b"}, right.First.Operand)
	assert.Equal(t, ast.Multiply, right.Rest[0].Op)
	assert.Equal(t, &ast.ColumnReference{Name: "c"}, right.Rest[0].Factor.Operand)
}

func TestParseMultiplicativeFirst(t *testing.T) {
	expr := mustParse(t, "2*3-4")

	require.Len(t, expr.Rest, 1)
	assert.Equal(t, ast.Subtract, expr.Rest[0].Op)
	assert.Equal(t, 2, expr.First.Len())
	assert.Equal(t, 1, expr.Rest[0].Term.Len())
}

func TestParseLeftToRightOrder(t *testing.T) {
	expr := mustParse(t, "a * b / c")

	term := expr.First
	require.Len(t, term.Rest, 2)
	assert.Equal(t, &ast.ColumnReference{Name: "a"}, term.First.Operand)
	assert.Equal(t, ast.Multiply, term.Rest[0].Op)
	assert.Equal(t, &ast.ColumnReference{Name: "b"}, term.Rest[0].Factor.Operand)
	assert.Equal(t, ast.Divide, term.Rest[1].Op)
	assert.Equal(t, &ast.ColumnReference{Name: "c"}, term.Rest[1].Factor.Operand)
}

func TestParseGrouping(t *testing.T) {
	expr := mustParse(t, "(a + 1) * 2")

	term := expr.First
	require.Len(t, term.Rest, 1)
	group, ok := term.First.Operand.(*ast.Parenthesized)
	require.True(t, ok, "expected *ast.Parenthesized, got %T", term.First.Operand)
	assert.Equal(t, 2, group.Expr.Len())
	assert.Equal(t, "(a + 1) * 2", expr.String())
}

func TestParseNestedGrouping(t *testing.T) {
	expr := mustParse(t, "-( ( x ) )")
	f := singleFactor(t, expr)
	assert.Equal(t, ast.SignMinus, f.Sign)
	outer, ok := f.Operand.(*ast.Parenthesized)
	require.True(t, ok)
	inner, ok := singleFactor(t, outer.Expr).Operand.(*ast.Parenthesized)
	require.True(t, ok)
	assert.Equal(t, &ast.ColumnReference{Name: "x"}, singleFactor(t, inner.Expr).Operand)
}

func TestParseGroupingDisabled(t *testing.T) {
	_, err := NewParser("(1)", 0, Config{}).ParseComplete()
	require.ErrorIs(t, err, lexer.ErrExpectedOperand)
	assert.Equal(t, 0, parseError(t, err).Pos)
}

func TestParseMaxDepth(t *testing.T) {
	cfg := Config{Grouping: true, MaxDepth: 2}

	_, err := NewParser("((1))", 0, cfg).ParseComplete()
	require.NoError(t, err)

	_, err = NewParser("(((1)))", 0, cfg).ParseComplete()
	require.ErrorIs(t, err, lexer.ErrMaxDepthExceeded)
	assert.Equal(t, 2, parseError(t, err).Pos)
}

func TestParseDefaultMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1)
	_, err := NewParser(deep, 0, defaultConfig).ParseComplete()
	require.ErrorIs(t, err, lexer.ErrMaxDepthExceeded)

	ok := strings.Repeat("(", DefaultMaxDepth) + "1" + strings.Repeat(")", DefaultMaxDepth)
	_, err = NewParser(ok, 0, defaultConfig).ParseComplete()
	require.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantPos int
	}{
		{name: "Unterminated string", input: `"abc`, wantErr: lexer.ErrUnterminatedString, wantPos: 4},
		{name: "Unterminated string after operator", input: `a + "abc`, wantErr: lexer.ErrUnterminatedString, wantPos: 8},
		{name: "Invalid character in string", input: "1 * \"a\x7fb\"", wantErr: lexer.ErrInvalidCharacter, wantPos: 6},
		{name: "Dangling operator", input: "1 +", wantErr: lexer.ErrExpectedOperand, wantPos: 3},
		{name: "Dangling multiplicative operator", input: "1 * ", wantErr: lexer.ErrExpectedOperand, wantPos: 4},
		{name: "Sign alone", input: "-", wantErr: lexer.ErrExpectedOperand, wantPos: 1},
		{name: "Missing close paren", input: "(1 + 2", wantErr: lexer.ErrMissingCloseParen, wantPos: 6},
		{name: "Empty group", input: "()", wantErr: lexer.ErrExpectedOperand, wantPos: 1},
		{name: "Trailing input", input: "1 2", wantErr: lexer.ErrUnexpectedInput, wantPos: 2},
		{name: "Unbalanced close paren", input: "a)", wantErr: lexer.ErrUnexpectedInput, wantPos: 1},
		{name: "Single quoted string", input: "'abc'", wantErr: lexer.ErrExpectedOperand, wantPos: 0},
		{name: "Empty input", input: "", wantErr: lexer.ErrEmptyInput, wantPos: 0},
		{name: "Whitespace only", input: "  ", wantErr: lexer.ErrEmptyInput, wantPos: 2},
		{name: "Number out of range", input: "1 + 99999999999999999999", wantErr: lexer.ErrNumericOutOfRange, wantPos: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := NewParser(tt.input, 0, defaultConfig).ParseComplete()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, expr)
			assert.Equal(t, tt.wantPos, parseError(t, err).Pos)
		})
	}
}

func TestParseExpressionSubSpan(t *testing.T) {
	input := "SELECT a + 1 FROM t"
	p := NewParser(input, 7, defaultConfig)

	expr, end, err := p.ParseExpression()
	require.NoError(t, err)
	assert.Equal(t, 12, end)
	assert.Equal(t, "a + 1", expr.String())
	assert.Equal(t, " FROM t", input[end:])
}

func TestParseExpressionInvalidPosition(t *testing.T) {
	for _, pos := range []int{-1, 4} {
		_, end, err := NewParser("abc", pos, defaultConfig).ParseExpression()
		require.ErrorIs(t, err, lexer.ErrInvalidPosition)
		assert.Equal(t, pos, end)
	}
}

func TestParseExpressionFailureKeepsStart(t *testing.T) {
	_, end, err := NewParser("x = 1 +", 4, defaultConfig).ParseExpression()
	require.Error(t, err)
	assert.Equal(t, 4, end)
}

func TestParseCustomColumnParser(t *testing.T) {
	// Accept @name variables as column references.
	cols := columnref.Func(func(input string, pos int) (*ast.ColumnReference, int, error) {
		c := lexer.NewCursor(input, pos)
		if !c.Accept('@') {
			return nil, pos, lexer.ErrNoMatch
		}
		name, ok := c.ReadIdentifier()
		if !ok {
			return nil, pos, lexer.ErrNoMatch
		}
		return &ast.ColumnReference{Name: name}, c.Pos(), nil
	})

	expr, err := NewParser("@total * 2", 0, Config{Columns: cols}).ParseComplete()
	require.NoError(t, err)
	assert.Equal(t, &ast.ColumnReference{Name: "total"}, expr.First.First.Operand)

	// Plain identifiers are no longer columns.
	_, err = NewParser("total", 0, Config{Columns: cols}).ParseComplete()
	require.ErrorIs(t, err, lexer.ErrExpectedOperand)
}

func TestParseColumnParserFailure(t *testing.T) {
	errReserved := errors.New("reserved word")
	cols := columnref.Func(func(input string, pos int) (*ast.ColumnReference, int, error) {
		if strings.HasPrefix(input[pos:], "select") {
			return nil, pos, errReserved
		}
		return columnref.Default{}.ParseColumnReference(input, pos)
	})

	_, err := NewParser("1 + select", 0, Config{Columns: cols}).ParseComplete()
	require.ErrorIs(t, err, errReserved)
	assert.Equal(t, 4, parseError(t, err).Pos)
}

func TestParseColumnParserBadEnd(t *testing.T) {
	cols := columnref.Func(func(input string, pos int) (*ast.ColumnReference, int, error) {
		return &ast.ColumnReference{Name: "x"}, pos, nil
	})

	_, err := NewParser("x", 0, Config{Columns: cols}).ParseComplete()
	require.Error(t, err)
	assert.Equal(t, 0, parseError(t, err).Pos)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"1",
		"-123",
		`"lite""ral"""`,
		"?",
		"t.col",
		"a + b * c - d / e",
		"-a * +b",
		"a - -1",
		"(a + 1) * (b - ?) / 3.50",
		`"x" + "y z" * ?`,
		"((((1))))",
		"1.0 * 0.000",
	}

	for _, input := range inputs {
		first := mustParse(t, input)
		second := mustParse(t, first.String())
		assert.True(t, ast.Equal(first, second), "%q re-serialised as %q", input, first.String())
		assert.Equal(t, first.String(), second.String())
	}
}

func BenchmarkParseSimple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = NewParser("price * 2", 0, defaultConfig).ParseComplete()
	}
}

func BenchmarkParseComplex(b *testing.B) {
	input := `(t.price + ?) * -qty / 100 - "discount ""special""" + (a - (b * 3.25))`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = NewParser(input, 0, defaultConfig).ParseComplete()
	}
}
