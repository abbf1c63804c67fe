package codegen

import "fmt"

// variable is one declared name and its type tag.
type variable struct {
	name string
	typ  string
}

// funcCtx is the per-function lowering context: its register allocator,
// the shared label generator, and the stack-offset map built from the
// calling convention in spec §4.4 — argument N at offset 7+locals+N, local
// N at offset 1+N, both counted from the *end* of their respective lists
// since declarations/arguments closest to the current SP sit lowest.
//
// Grounded on original_source/src/compiler/nodes.py's FunctionContext and
// its get_offset method.
type funcCtx struct {
	regs      *regAlloc
	labels    *labelGen
	variables []variable
	arguments []variable
	retLabel  string
}

func (c *funcCtx) offsetFor(name string) (int, error) {
	for i := 0; i < len(c.variables); i++ {
		v := c.variables[len(c.variables)-1-i]
		if v.name == name {
			return i + 1, nil
		}
	}
	for i := 0; i < len(c.arguments); i++ {
		v := c.arguments[len(c.arguments)-1-i]
		if v.name == name {
			return i + 7 + len(c.variables), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownVariable, name)
}
