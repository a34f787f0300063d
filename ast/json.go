package ast

import "encoding/json"

// Kinds reported in the "kind" field of a marshalled Primary.
const (
	KindColumn    = "column"
	KindParameter = "parameter"
	KindString    = "string"
	KindNumber    = "number"
	KindDecimal   = "decimal"
	KindGroup     = "group"
)

func (c *ColumnReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Table string `json:"table,omitempty"`
		Name  string `json:"name"`
	}{KindColumn, c.Table, c.Name})
}

func (p *DynamicParameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Ordinal int    `json:"ordinal"`
	}{KindParameter, p.Ordinal})
}

func (s *StringLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{KindString, s.Value})
}

func (n *NumericLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value int64  `json:"value"`
	}{KindNumber, n.Value})
}

// MarshalJSON writes the decimal value as a JSON string so no precision is lost.
func (d *DecimalLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{KindDecimal, d.String()})
}

func (p *Parenthesized) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string      `json:"kind"`
		Expr *Expression `json:"expr"`
	}{KindGroup, p.Expr})
}

func (s Sign) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (o MulOp) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
func (o AddOp) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

type jsonFactor struct {
	Sign    Sign    `json:"sign,omitempty"`
	Operand Primary `json:"operand"`
}

type jsonTermPart struct {
	Op     MulOp      `json:"op"`
	Factor jsonFactor `json:"factor"`
}

type jsonTerm struct {
	First jsonFactor     `json:"first"`
	Rest  []jsonTermPart `json:"rest,omitempty"`
}

type jsonExpressionPart struct {
	Op   AddOp    `json:"op"`
	Term jsonTerm `json:"term"`
}

type jsonExpression struct {
	First jsonTerm             `json:"first"`
	Rest  []jsonExpressionPart `json:"rest,omitempty"`
}

func toJSONTerm(t *Term) jsonTerm {
	jt := jsonTerm{First: jsonFactor(t.First)}
	for _, part := range t.Rest {
		jt.Rest = append(jt.Rest, jsonTermPart{Op: part.Op, Factor: jsonFactor(part.Factor)})
	}
	return jt
}

// MarshalJSON writes the expression as nested objects. Each primary carries a "kind"
// discriminator, so the output can be inspected without knowing the Go types.
func (e *Expression) MarshalJSON() ([]byte, error) {
	je := jsonExpression{First: toJSONTerm(&e.First)}
	for i := range e.Rest {
		je.Rest = append(je.Rest, jsonExpressionPart{Op: e.Rest[i].Op, Term: toJSONTerm(&e.Rest[i].Term)})
	}
	return json.Marshal(je)
}
