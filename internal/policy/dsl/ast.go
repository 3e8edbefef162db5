// SPDX-License-Identifier: Apache-2.0

// Package dsl defines the AST types for the Legalease policy surface syntax
// and a parser built with participle, the way the teacher builds its own
// ABAC DSL parser.
package dsl

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// legaleaseLexer tokenizes Legalease policy source. Order matters: longer
// operator patterns must precede shorter ones that share a prefix.
var legaleaseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'[^']*'`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?`},
	{Name: "OpEq", Pattern: `==`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpGe", Pattern: `>=`},
	{Name: "OpLe", Pattern: `<=`},
	{Name: "OpGt", Pattern: `>`},
	{Name: "OpLt", Pattern: `<`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Punct", Pattern: `[(),:]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// GrammarVersion is the engine's declared Legalease grammar version. A
// policy's optional leading `#! grammar <semver>` pragma is checked against
// this under a caret (`^1.0.0`) constraint.
const GrammarVersion = "1.0.0"

// Document is one or more ALLOW clauses.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Clauses []*Clause      `parser:"@@+" json:"clauses"`
}

// Clause is a single ALLOW statement.
type Clause struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Expr *Expr          `parser:"'ALLOW' @@" json:"expr"`
}

// Expr is the top of the operator-precedence chain: an OR of ANDs.
type Expr struct {
	Pos lexer.Position `parser:"" json:"-"`
	Or  *OrExpr        `parser:"@@" json:"or"`
}

// OrExpr is a right-associative OR chain; AND binds tighter than OR.
type OrExpr struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *AndExpr       `parser:"@@" json:"left"`
	Right *OrExpr        `parser:"('OR' @@)?" json:"right,omitempty"`
}

// AndExpr is a right-associative AND chain.
type AndExpr struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *Primary       `parser:"@@" json:"left"`
	Right *AndExpr       `parser:"('AND' @@)?" json:"right,omitempty"`
}

// Primary is either a leaf attribute or a parenthesized sub-expression.
type Primary struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Attr    *AttrNode      `parser:"  @@" json:"attr,omitempty"`
	SubExpr *Expr          `parser:"| '(' @@ ')'" json:"sub_expr,omitempty"`
}

// AttrNode is one parsed attribute clause. Exactly one field is non-nil.
type AttrNode struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Filter  *FilterNode    `parser:"  @@" json:"filter,omitempty"`
	Redact  *RedactNode    `parser:"| @@" json:"redact,omitempty"`
	Schema  *SchemaNode    `parser:"| @@" json:"schema,omitempty"`
	Privacy *PrivacyNode   `parser:"| @@" json:"privacy,omitempty"`
	Role    *RoleNode      `parser:"| @@" json:"role,omitempty"`
	Purpose *PurposeNode   `parser:"| @@" json:"purpose,omitempty"`
}

// FilterNode matches `FILTER ident cmp (int|string)`. The comparator field
// accepts all six comparison tokens so an unsupported one (<, >, !=)
// produces a clear UNSUPPORTED_OPERATOR error downstream instead of a
// confusing parse failure.
type FilterNode struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Col        string         `parser:"'FILTER' @Ident" json:"col"`
	Comparator string         `parser:"@(OpEq | OpNe | OpGe | OpLe | OpGt | OpLt)" json:"comparator"`
	Value      *FilterValue   `parser:"@@" json:"value"`
}

// FilterValue is an integer or single-quoted string literal.
type FilterValue struct {
	Pos lexer.Position `parser:"" json:"-"`
	Int *string        `parser:"  @Number" json:"int,omitempty"`
	Str *string        `parser:"| @String" json:"str,omitempty"`
}

// RedactNode matches `REDACT ident "(" int? ":" int? ")"`.
type RedactNode struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Col   string         `parser:"'REDACT' @Ident '('" json:"col"`
	Left  *string        `parser:"@Number?" json:"left,omitempty"`
	Colon string         `parser:"':'" json:"-"`
	Right *string        `parser:"@Number?" json:"right,omitempty"`
	End   string         `parser:"')'" json:"-"`
}

// SchemaNode matches `SCHEMA ident ("," ident)*`.
type SchemaNode struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Cols []string       `parser:"'SCHEMA' @Ident (',' @Ident)*" json:"cols"`
}

// DPParams matches `"(" float "," float ")"` for the DP privacy technique.
type DPParams struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Eps   string         `parser:"'(' @Number" json:"eps"`
	Delta string         `parser:"',' @Number ')'" json:"delta"`
}

// PrivacyNode matches `PRIVACY priv`. Exactly one alternative is populated.
type PrivacyNode struct {
	Pos           lexer.Position `parser:"" json:"-"`
	Anonymization bool           `parser:"'PRIVACY' ( @'Anonymization'" json:"anonymization,omitempty"`
	Aggregation   bool           `parser:"          | @'Aggregation'" json:"aggregation,omitempty"`
	KAnonymity    *string        `parser:"          | ('k-anonymity' @Number)" json:"k_anonymity,omitempty"`
	LDiversity    *string        `parser:"          | ('l-diversity' @Number)" json:"l_diversity,omitempty"`
	TCloseness    *string        `parser:"          | ('t-closeness' @Number)" json:"t_closeness,omitempty"`
	DP            *DPParams      `parser:"          | ('DP' @@) )" json:"dp,omitempty"`
}

// RoleNode matches `ROLE ident`.
type RoleNode struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"'ROLE' @Ident" json:"name"`
}

// PurposeNode matches `PURPOSE ident`.
type PurposeNode struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"'PURPOSE' @Ident" json:"name"`
}

func (d *Document) String() string {
	parts := make([]string, len(d.Clauses))
	for i, c := range d.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\n")
}

func (c *Clause) String() string { return "ALLOW " + c.Expr.String() }

func (e *Expr) String() string { return e.Or.String() }

func (o *OrExpr) String() string {
	if o.Right == nil {
		return o.Left.String()
	}
	return o.Left.String() + " OR " + o.Right.String()
}

func (a *AndExpr) String() string {
	if a.Right == nil {
		return a.Left.String()
	}
	return a.Left.String() + " AND " + a.Right.String()
}

func (p *Primary) String() string {
	if p.Attr != nil {
		return p.Attr.String()
	}
	return "(" + p.SubExpr.String() + ")"
}

func (a *AttrNode) String() string {
	switch {
	case a.Filter != nil:
		return a.Filter.String()
	case a.Redact != nil:
		return a.Redact.String()
	case a.Schema != nil:
		return a.Schema.String()
	case a.Privacy != nil:
		return a.Privacy.String()
	case a.Role != nil:
		return a.Role.String()
	case a.Purpose != nil:
		return a.Purpose.String()
	default:
		return "<empty>"
	}
}

func (f *FilterNode) String() string {
	return "FILTER " + f.Col + " " + f.Comparator + " " + f.Value.String()
}

func (v *FilterValue) String() string {
	if v.Int != nil {
		return *v.Int
	}
	return "'" + *v.Str + "'"
}

func (r *RedactNode) String() string {
	left, right := "", ""
	if r.Left != nil {
		left = *r.Left
	}
	if r.Right != nil {
		right = *r.Right
	}
	return "REDACT " + r.Col + "(" + left + ":" + right + ")"
}

func (s *SchemaNode) String() string { return "SCHEMA " + strings.Join(s.Cols, ", ") }

func (p *PrivacyNode) String() string {
	switch {
	case p.Anonymization:
		return "PRIVACY Anonymization"
	case p.Aggregation:
		return "PRIVACY Aggregation"
	case p.KAnonymity != nil:
		return "PRIVACY k-anonymity " + *p.KAnonymity
	case p.LDiversity != nil:
		return "PRIVACY l-diversity " + *p.LDiversity
	case p.TCloseness != nil:
		return "PRIVACY t-closeness " + *p.TCloseness
	case p.DP != nil:
		return "PRIVACY DP (" + p.DP.Eps + ", " + p.DP.Delta + ")"
	default:
		return "PRIVACY <empty>"
	}
}

func (r *RoleNode) String() string { return "ROLE " + r.Name }

func (p *PurposeNode) String() string { return "PURPOSE " + p.Name }

// newParser constructs a participle parser for the Legalease grammar.
// MaxLookahead enables backtracking for the parenthesized-subexpression
// alternative in Primary.
func newParser() (*participle.Parser[Document], error) {
	return participle.Build[Document](
		participle.Lexer(legaleaseLexer),
		participle.Unquote("String"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}
