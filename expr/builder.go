package expr

import "github.com/Conqxeror/veloxx/value"

// Builder wraps an Expr to offer a chainable construction API, e.g.
// ColB("a").Add(ColB("b")).Gt(LitB(value.NewI32(0))). This mirrors the fluent
// query-building shape other_examples' galleon-style dataframe libraries
// favor over raw struct literals, adapted here to build plain Expr/
// Predicate trees rather than a query plan.
type Builder struct{ Expr Expr }

// C wraps an existing Expr for chaining.
func C(e Expr) Builder { return Builder{e} }

// ColB starts a chain by referencing a column.
func ColB(name string) Builder { return Builder{Col{Name: name}} }

// LitB starts a chain from a constant value.Value.
func LitB(v value.Value) Builder { return Builder{Lit{Value: v}} }

// Add chains l + r.
func (b Builder) Add(r Builder) Builder { return Builder{Add{b.Expr, r.Expr}} }

// Sub chains l - r.
func (b Builder) Sub(r Builder) Builder { return Builder{Subtract{b.Expr, r.Expr}} }

// Mul chains l * r.
func (b Builder) Mul(r Builder) Builder { return Builder{Multiply{b.Expr, r.Expr}} }

// Div chains l / r.
func (b Builder) Div(r Builder) Builder { return Builder{Divide{b.Expr, r.Expr}} }

// Eq builds an Equals predicate against r.
func (b Builder) Eq(r Builder) Predicate { return Equals{b.Expr, r.Expr} }

// Ne builds a NotEquals predicate against r.
func (b Builder) Ne(r Builder) Predicate { return NotEquals{b.Expr, r.Expr} }

// Gt builds a GreaterThan predicate against r.
func (b Builder) Gt(r Builder) Predicate { return GreaterThan{b.Expr, r.Expr} }

// Lt builds a LessThan predicate against r.
func (b Builder) Lt(r Builder) Predicate { return LessThan{b.Expr, r.Expr} }

// Ge builds a GreaterThanOrEqual predicate against r.
func (b Builder) Ge(r Builder) Predicate { return GreaterThanOrEqual{b.Expr, r.Expr} }

// Le builds a LessThanOrEqual predicate against r.
func (b Builder) Le(r Builder) Predicate { return LessThanOrEqual{b.Expr, r.Expr} }

// IsNullB builds an IsNull predicate over this chain.
func (b Builder) IsNullB() Predicate { return IsNull{b.Expr} }

// PredBuilder offers the same chaining for combining predicates:
// P(a.Gt(b)).AndB(P(c.Lt(d))).
type PredBuilder struct{ Predicate Predicate }

// P wraps an existing Predicate for chaining.
func P(p Predicate) PredBuilder { return PredBuilder{p} }

// AndB chains p AND r.
func (b PredBuilder) AndB(r PredBuilder) PredBuilder { return PredBuilder{And{b.Predicate, r.Predicate}} }

// OrB chains p OR r.
func (b PredBuilder) OrB(r PredBuilder) PredBuilder { return PredBuilder{Or{b.Predicate, r.Predicate}} }

// NotB negates the chain.
func (b PredBuilder) NotB() PredBuilder { return PredBuilder{Not{b.Predicate}} }
