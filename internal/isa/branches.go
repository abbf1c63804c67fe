package isa

// branchEntries covers the four relative conditional jumps. Each reads a
// signed 8-bit PC offset from the byte following the opcode, sign-extends
// it through the ALU's ONEO/FFO constant sources, and adds it to IP.
//
// Only step 0 differs per mnemonic: it tests the flag that gates the
// branch (CO for JCR, FZ for JZR, NEG for JNR, A2G1 for JLTR) and either
// starts loading the offset or skips it (IPA) and resets to the next
// instruction (MRST). Steps 1 through 5 are identical across all four and,
// per original_source/src/assembler/instructions.py, step 3's sign-
// extension fixup always re-tests CO then A2G1 — the same two flags
// regardless of which condition step 0 used. spec.md's Open Question 3
// wonders whether this is a uniform-CO bug; it isn't: the original is
// authored this way deliberately (step 3 is about the sign of the ALU's
// add-with-carry result from step 2, not about the branch condition), and
// is transcribed verbatim here. See DESIGN.md for the full resolution.
func branchEntries() []Entry {
	sharedTail := func() []StepGen {
		return []StepGen{
			step0(MO.Or(A2I)),
			step0(OrAll(AO, CI, IPE)),
			func(_ byte, f Flags) ControlWord {
				switch {
				case !f.Has(CO):
					return MRST
				case f.Has(A2G1):
					return FFO.Or(A2I)
				default:
					return ONEO.Or(A2I)
				}
			},
			step0(OrAll(IPE, IPO, IPS, A1I)),
			step0(OrAll(AO, IPE, IPS)),
		}
	}

	branch := func(mnemonic string, target byte, testFlag Flags) Entry {
		steps := append([]StepGen{
			func(_ byte, f Flags) ControlWord {
				if f.Has(testFlag) {
					return A1I.Or(OrAll(IPE, IPO))
				}
				return IPA.Or(MRST)
			},
		}, sharedTail()...)
		return Entry{
			Mnemonic: mnemonic,
			Arity:    1,
			Target:   target,
			Mask:     0b11_11_11_11,
			Steps:    steps,
		}
	}

	return []Entry{
		branch("JCR", 0b11_00_01_00, CO),
		branch("JZR", 0b11_00_01_01, FZ),
		branch("JNR", 0b11_00_01_10, NEG),
		branch("JLTR", 0b11_00_01_11, A2G1),
	}
}
