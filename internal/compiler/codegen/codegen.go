// Package codegen lowers a parsed program to assembly text using the
// stack-based calling convention pinned down by the CPU's PUSH/PULL/PEEK/
// SPOF/JAL/RET instructions.
//
// Grounded on original_source/src/compiler/nodes.py, whose generate_code
// methods on Program/Function/Declaration/Assignment/Return/NumberLiteral/
// IdentifierValue/FunctionCall/ExpressionPlus this package transcribes as
// free functions over ast nodes plus an explicit funcCtx, rather than as
// methods hung off the node types themselves.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"microtoolchain/internal/compiler/ast"
)

var (
	errUnknownVariable = errors.New("codegen: reference to undeclared variable")
)

// Generate lowers prog to assembly source text. The returned text is valid
// input to the assembler package.
func Generate(prog *ast.Program) (string, error) {
	labels := newLabelGen()
	var funcs []string

	for _, fn := range prog.Functions {
		code, err := generateFunction(fn, labels)
		if err != nil {
			return "", fmt.Errorf("codegen: function %q: %w", fn.Name, err)
		}
		funcs = append(funcs, code)
	}

	var b strings.Builder
	b.WriteString("LI A, 0xFF\n")
	b.WriteString("SPSL A\n")
	b.WriteString("SPSH A\n")
	b.WriteString("ZERO A\n")
	b.WriteString("PJMP :function_main\n")
	b.WriteString("JAL\n")
	b.WriteString("HLT\n")
	b.WriteString(strings.Join(funcs, "\n"))
	return b.String(), nil
}

func generateFunction(fn *ast.Function, labels *labelGen) (string, error) {
	args := make([]variable, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = variable{name: a.Name, typ: a.Type}
	}

	functionLabel := labels.absolute(fmt.Sprintf("function_%s", fn.Name))
	retLabel := labels.absolute(fmt.Sprintf("function_ret_%s", fn.Name))

	ctx := &funcCtx{regs: &regAlloc{}, labels: labels, arguments: args, retLabel: retLabel}

	var body strings.Builder
	for _, stmt := range fn.Body {
		code, err := generateStatement(stmt, ctx)
		if err != nil {
			return "", err
		}
		body.WriteString(code)
		if err := ctx.regs.AssertClear(); err != nil {
			return "", fmt.Errorf("line %d: %w", statementLine(stmt), err)
		}
	}

	pullSlide := strings.Repeat("PULL\n", len(ctx.variables))

	var out strings.Builder
	fmt.Fprintf(&out, "\n# %s %v -> %s\n", fn.Name, fn.Args, fn.ReturnType)
	out.WriteString(functionLabel + "\n")
	out.WriteString("\n# saving ip\n")
	out.WriteString("PUSH\nRTWL\nPUSH\nRTWH\n")
	out.WriteString(body.String())
	out.WriteString("HLT\n")
	out.WriteString(retLabel + "\n")
	out.WriteString(pullSlide)
	out.WriteString("\n# restoring ip\n")
	out.WriteString("PULL\nRTRH\nPULL\nRTRL\n")
	out.WriteString("RET\n")
	return out.String(), nil
}

func statementLine(stmt ast.Statement) int {
	switch s := stmt.(type) {
	case ast.Declaration:
		return s.Line
	case ast.Assignment:
		return s.Line
	case ast.Return:
		return s.Line
	default:
		return 0
	}
}

func generateStatement(stmt ast.Statement, ctx *funcCtx) (string, error) {
	switch s := stmt.(type) {
	case ast.Declaration:
		ctx.variables = append(ctx.variables, variable{name: s.Name, typ: s.Type})
		return fmt.Sprintf("PUSH # for var %s\n", s.Name), nil

	case ast.Assignment:
		reg, code, err := generateExpr(s.Expr, ctx)
		if err != nil {
			return "", err
		}
		if err := ctx.regs.Free(reg); err != nil {
			return "", err
		}
		offset, err := ctx.offsetFor(s.Name)
		if err != nil {
			return "", err
		}
		return code + fmt.Sprintf("SPOF 0x%x # var: %s\nMEMW %s\n", offset, s.Name, reg), nil

	case ast.Return:
		reg, code, err := generateExpr(s.Expr, ctx)
		if err != nil {
			return "", err
		}
		if err := ctx.regs.Free(reg); err != nil {
			return "", err
		}
		if err := ctx.regs.AssertClear(); err != nil {
			return "", err
		}
		return code + fmt.Sprintf("MV A, %s\nPJMP %s\nJMP\n", reg, ctx.retLabel), nil

	default:
		return "", fmt.Errorf("codegen: unhandled statement type %T", stmt)
	}
}

// generateExpr lowers e and returns the register holding its result
// alongside the emitted code. The caller owns the returned register and
// must free it once done.
func generateExpr(e ast.Expr, ctx *funcCtx) (string, string, error) {
	switch v := e.(type) {
	case ast.NumberLiteral:
		reg, err := ctx.regs.Request()
		if err != nil {
			return "", "", err
		}
		return reg, fmt.Sprintf("LI %s, 0x%x\n", reg, v.Value), nil

	case ast.Identifier:
		offset, err := ctx.offsetFor(v.Name)
		if err != nil {
			return "", "", err
		}
		reg, err := ctx.regs.Request()
		if err != nil {
			return "", "", err
		}
		return reg, fmt.Sprintf("SPOF 0x%x # var %s\nMEMR %s\n", offset, v.Name, reg), nil

	case ast.BinaryPlus:
		return generatePlus(v, ctx)

	case ast.Call:
		return generateCall(v, ctx)

	default:
		return "", "", fmt.Errorf("codegen: unhandled expression type %T", e)
	}
}

func generatePlus(v ast.BinaryPlus, ctx *funcCtx) (string, string, error) {
	lhsReg, lhsCode, err := generateExpr(v.LHS, ctx)
	if err != nil {
		return "", "", err
	}
	rhsReg, rhsCode, err := generateExpr(v.RHS, ctx)
	if err != nil {
		return "", "", err
	}
	if err := ctx.regs.Free(rhsReg); err != nil {
		return "", "", err
	}
	return lhsReg, lhsCode + rhsCode + fmt.Sprintf("ADD %s, %s\n", lhsReg, rhsReg), nil
}

// generateCall lowers a function call: push each argument, save the
// currently live registers padded to a fixed 4 slots so the restore
// offsets never depend on how many registers happened to be live, call,
// move the result out of A, restore, and pop the arguments back off.
func generateCall(v ast.Call, ctx *funcCtx) (string, string, error) {
	var args strings.Builder
	for i, argExpr := range v.Args {
		reg, code, err := generateExpr(argExpr, ctx)
		if err != nil {
			return "", "", err
		}
		if err := ctx.regs.Free(reg); err != nil {
			return "", "", err
		}
		args.WriteString(code)
		fmt.Fprintf(&args, "PUSH # arg #%d\nMEMW %s\n", i, reg)
	}
	popArgs := strings.Repeat("PULL\n", len(v.Args))

	active := ctx.regs.Active()
	var saveRegs strings.Builder
	for _, r := range active {
		fmt.Fprintf(&saveRegs, "PUSH\nMEMW %s\n", r)
	}
	saveRegs.WriteString(strings.Repeat("PUSH\n", 4-len(active)))

	var restoreRegs strings.Builder
	restoreRegs.WriteString(strings.Repeat("PULL\n", 4-len(active)))
	for i := len(active) - 1; i >= 0; i-- {
		fmt.Fprintf(&restoreRegs, "PULL\nMEMR %s\n", active[i])
	}

	result, err := ctx.regs.Request()
	if err != nil {
		return "", "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "\n# calling %s\n", v.Callee)
	out.WriteString(args.String())
	out.WriteString("# saving registers\n")
	out.WriteString(saveRegs.String())
	fmt.Fprintf(&out, "\nPJMP :function_%s\nJAL\n\n# moving return type to correct register\nMV %s, A\n\n# restoring registers\n", v.Callee, result)
	out.WriteString(restoreRegs.String())
	out.WriteString("# popping arguments\n")
	out.WriteString(popArgs)

	return result, out.String(), nil
}
