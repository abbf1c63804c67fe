// Package ast holds the AST node shapes for the compiler's C-subset
// grammar: functions with local variables, assignments, returns, integer
// literals, identifiers, "+", and calls.
//
// Grounded on original_source/src/compiler/nodes.py, whose Python
// dataclasses map directly onto these structs and interfaces; field names
// and shape are kept, comments and generate_code methods are not (codegen
// lives in internal/compiler/codegen instead of on the node types
// themselves, following Go's preference for free functions operating on
// data over OO-style methods scattered across a node hierarchy).
package ast

// Program is the root node: an ordered list of functions.
type Program struct {
	Functions []*Function
}

// Argument is one function parameter: its name and type tag. The language
// has a single built-in type, "int", so Type is always that string, but
// the field exists the way original_source's Argument dataclass carries a
// typ field, for the same reason: a hook for a type system this spec
// deliberately doesn't build.
type Argument struct {
	Name string
	Type string
	Line int
}

// Function is a named, typed function with an ordered statement list.
type Function struct {
	Name       string
	Args       []Argument
	ReturnType string
	Body       []Statement
	Line       int
}

// Statement is one of Declaration, Assignment, or Return.
type Statement interface {
	isStatement()
}

// Declaration introduces a local variable; it is never initialized at
// declaration (spec's grammar has no combined declare-and-assign form).
type Declaration struct {
	Name string
	Type string
	Line int
}

// Assignment stores the value of Expr into the variable named Name.
type Assignment struct {
	Name string
	Expr Expr
	Line int
}

// Return evaluates Expr and hands it back to the caller.
type Return struct {
	Expr Expr
	Line int
}

func (Declaration) isStatement() {}
func (Assignment) isStatement()  {}
func (Return) isStatement()      {}

// Expr is one of NumberLiteral, Identifier, BinaryPlus, or Call.
type Expr interface {
	isExpr()
}

// NumberLiteral is a decimal integer constant.
type NumberLiteral struct {
	Value int
	Line  int
}

// Identifier references a local variable or argument by name.
type Identifier struct {
	Name string
	Line int
}

// BinaryPlus is left-associative addition; the grammar defines no other
// binary operator.
type BinaryPlus struct {
	LHS, RHS Expr
	Line     int
}

// Call invokes the function named Callee with the given argument
// expressions.
type Call struct {
	Callee string
	Args   []Expr
	Line   int
}

func (NumberLiteral) isExpr() {}
func (Identifier) isExpr()    {}
func (BinaryPlus) isExpr()    {}
func (Call) isExpr()          {}
