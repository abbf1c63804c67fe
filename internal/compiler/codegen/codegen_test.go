package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"microtoolchain/internal/compiler/lexer"
	"microtoolchain/internal/compiler/parser"
)

func generateSource(t *testing.T, src string) string {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	out, err := Generate(prog)
	require.NoError(t, err)
	return out
}

func TestProgramPrologueSetsStackPointer(t *testing.T) {
	out := generateSource(t, `
function int main() {
	return 0;
}
`)
	require.True(t, strings.HasPrefix(out, "LI A, 0xFF\nSPSL A\nSPSH A\nZERO A\nPJMP :function_main\nJAL\nHLT\n"))
}

func TestFunctionPrologueSavesReturnAddress(t *testing.T) {
	out := generateSource(t, `
function int main() {
	return 0;
}
`)
	require.Contains(t, out, ":function_main")
	require.Contains(t, out, "PUSH\nRTWL\nPUSH\nRTWH")
}

func TestFunctionEpilogueRestoresReturnAddress(t *testing.T) {
	out := generateSource(t, `
function int main() {
	return 0;
}
`)
	require.Contains(t, out, ":function_ret_main")
	require.Contains(t, out, "PULL\nRTRH\nPULL\nRTRL")
	require.Contains(t, out, "RET")
}

func TestDeclarationPushesOneSlot(t *testing.T) {
	out := generateSource(t, `
function int main() {
	int x;
	x = 1;
	return x;
}
`)
	require.Contains(t, out, "PUSH # for var x")
	// one PULL for the local, emitted right before the ip-restore PULLs.
	require.Contains(t, out, "PULL\n\n# restoring ip")
}

func TestReturnMovesResultIntoA(t *testing.T) {
	out := generateSource(t, `
function int main() {
	return 5;
}
`)
	require.Contains(t, out, "LI A, 0x5")
	require.Contains(t, out, "MV A, A")
}

func TestPlusFreesRHSRegister(t *testing.T) {
	out := generateSource(t, `
function int add(int a, int b) {
	return a + b;
}
`)
	require.Contains(t, out, "ADD A, B")
}

func TestCallPadsSavedRegistersToFourSlots(t *testing.T) {
	out := generateSource(t, `
function int one() {
	return 1;
}

function int main() {
	return one();
}
`)
	require.Contains(t, out, "PJMP :function_one")
	require.Contains(t, out, "JAL")
	// no registers live at the call site, so all four saved slots are padding.
	require.Contains(t, out, "PUSH\nPUSH\nPUSH\nPUSH\n")
}

func TestRegisterExhaustionIsRejected(t *testing.T) {
	tokens, err := lexer.Lex(`
function int main() {
	return 1 + {2 + {3 + {4 + 5}}};
}
`)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	_, err = Generate(prog)
	require.ErrorIs(t, err, errNoFreeRegister)
}

func TestUndeclaredVariableIsRejected(t *testing.T) {
	tokens, err := lexer.Lex(`
function int main() {
	return y;
}
`)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	_, err = Generate(prog)
	require.ErrorIs(t, err, errUnknownVariable)
}

func TestLabelDisambiguationSuffixesRepeatedHints(t *testing.T) {
	labels := newLabelGen()
	require.Equal(t, ":function_main", labels.absolute("function_main"))
	require.Equal(t, ":function_main__1", labels.absolute("function_main"))
}
