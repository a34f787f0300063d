package ast

// Walk traverses the tree rooted at node in depth-first pre-order. If fn returns
// false the children of that node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Expression:
		Walk(&n.First, fn)
		for i := range n.Rest {
			Walk(&n.Rest[i].Term, fn)
		}
	case *Term:
		Walk(&n.First, fn)
		for i := range n.Rest {
			Walk(&n.Rest[i].Factor, fn)
		}
	case *Factor:
		if n.Operand != nil {
			Walk(n.Operand, fn)
		}
	case *Parenthesized:
		if n.Expr != nil {
			Walk(n.Expr, fn)
		}
	}
}

// Parameters returns the dynamic parameters of expr in the order they appear.
func Parameters(expr *Expression) []*DynamicParameter {
	var params []*DynamicParameter
	Walk(expr, func(n Node) bool {
		if p, ok := n.(*DynamicParameter); ok {
			params = append(params, p)
		}
		return true
	})
	return params
}

// Columns returns the column references of expr in the order they appear.
func Columns(expr *Expression) []*ColumnReference {
	var cols []*ColumnReference
	Walk(expr, func(n Node) bool {
		if c, ok := n.(*ColumnReference); ok {
			cols = append(cols, c)
		}
		return true
	})
	return cols
}

// Equal reports whether a and b have the same structure: the same operators in the
// same order over equal operands. Decimal literals compare by value.
func Equal(a, b *Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Rest) != len(b.Rest) || !equalTerm(&a.First, &b.First) {
		return false
	}
	for i := range a.Rest {
		if a.Rest[i].Op != b.Rest[i].Op || !equalTerm(&a.Rest[i].Term, &b.Rest[i].Term) {
			return false
		}
	}
	return true
}

func equalTerm(a, b *Term) bool {
	if len(a.Rest) != len(b.Rest) || !equalFactor(&a.First, &b.First) {
		return false
	}
	for i := range a.Rest {
		if a.Rest[i].Op != b.Rest[i].Op || !equalFactor(&a.Rest[i].Factor, &b.Rest[i].Factor) {
			return false
		}
	}
	return true
}

func equalFactor(a, b *Factor) bool {
	return a.Sign == b.Sign && equalPrimary(a.Operand, b.Operand)
}

func equalPrimary(a, b Primary) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *ColumnReference:
		y, ok := b.(*ColumnReference)
		return ok && x.Table == y.Table && x.Name == y.Name
	case *DynamicParameter:
		y, ok := b.(*DynamicParameter)
		return ok && x.Ordinal == y.Ordinal
	case *StringLiteral:
		y, ok := b.(*StringLiteral)
		return ok && x.Value == y.Value
	case *NumericLiteral:
		y, ok := b.(*NumericLiteral)
		return ok && x.Value == y.Value
	case *DecimalLiteral:
		y, ok := b.(*DecimalLiteral)
		return ok && x.Value.Equal(y.Value)
	case *Parenthesized:
		y, ok := b.(*Parenthesized)
		return ok && Equal(x.Expr, y.Expr)
	}
	return false
}
