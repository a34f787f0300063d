package sqlexpr_test

import (
	"errors"
	"fmt"

	sqlexpr "github.com/nlstn/go-sqlexpr"
)

func ExampleParse() {
	expr, err := sqlexpr.Parse(`price*(1-?)+"fee"`)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sqlexpr.Canonical(expr))
	fmt.Println("terms:", expr.Len())
	fmt.Println("parameters:", len(sqlexpr.Parameters(expr)))
	// Output:
	// price * (1 - ?) + "fee"
	// terms: 2
	// parameters: 1
}

func ExampleParseAt() {
	stmt := "SELECT qty * unit_price FROM orders"
	expr, end, err := sqlexpr.ParseAt(stmt, len("SELECT "))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(expr)
	fmt.Printf("rest: %q\n", stmt[end:])
	// Output:
	// qty * unit_price
	// rest: " FROM orders"
}

func ExampleParseError() {
	_, err := sqlexpr.Parse(`1 + "abc`)

	var perr *sqlexpr.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Pos, errors.Is(err, sqlexpr.ErrUnterminatedString))
	}
	fmt.Println(err)
	// Output:
	// 8 true
	// sqlexpr: unterminated string literal at position 8 near "\"abc"
}
