package codegen

import "errors"

// registers lists the four general-purpose registers in the fixed order
// the original register handler iterates them in — active-register order
// in call lowering depends on this being stable.
var registers = [...]string{"A", "B", "C", "D"}

var (
	errNoFreeRegister = errors.New("codegen: no free register (expression needs more than 4 temporaries)")
	errAlreadyFree    = errors.New("codegen: register already free")
	errNotClear       = errors.New("codegen: register handler not clear at statement boundary")
)

// regAlloc is the bump allocator over {A,B,C,D} described in spec §4.4: no
// spilling, an expression lowering that needs a fifth live temporary is
// rejected outright.
type regAlloc struct {
	held [4]bool
}

func (r *regAlloc) indexOf(reg string) int {
	for i, name := range registers {
		if name == reg {
			return i
		}
	}
	return -1
}

// Request returns the first free register in A,B,C,D order and marks it
// held.
func (r *regAlloc) Request() (string, error) {
	for i, held := range r.held {
		if !held {
			r.held[i] = true
			return registers[i], nil
		}
	}
	return "", errNoFreeRegister
}

// Free releases reg back to the pool.
func (r *regAlloc) Free(reg string) error {
	i := r.indexOf(reg)
	if i < 0 || !r.held[i] {
		return errAlreadyFree
	}
	r.held[i] = false
	return nil
}

// AssertClear fails if any register is still held — called at every
// statement boundary and at function exit.
func (r *regAlloc) AssertClear() error {
	for _, held := range r.held {
		if held {
			return errNotClear
		}
	}
	return nil
}

// Active returns the currently held registers in A,B,C,D order.
func (r *regAlloc) Active() []string {
	var out []string
	for i, held := range r.held {
		if held {
			out = append(out, registers[i])
		}
	}
	return out
}
