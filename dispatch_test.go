package m68k

import "testing"

func TestBuildDispatchTableCoversEveryOpcode(t *testing.T) {
	cpu, _ := newTestCPU()

	for o := 0; o < 65536; o++ {
		if cpu.dispatch[o] == nil {
			t.Fatalf("opcode %#04x has a nil dispatch entry", o)
		}
	}
}

func TestBuildDispatchTableIdempotent(t *testing.T) {
	cpu, _ := newTestCPU()
	BuildDispatchTable(cpu) // second call must be a no-op, not re-panic or reset state
	if !cpu.dispatchSet {
		t.Fatal("dispatchSet should remain true after a second build call")
	}
	if !cpu.IsValidInstruction(0x4E71) {
		t.Fatal("NOP should still be valid after a redundant build call")
	}
}

func TestCanonicalCollisionResolvesToNarrowerFamily(t *testing.T) {
	// SWAP (0xFFF8/0x4840) is an exact encoding narrower than PEA's family
	// (0xFFC0/0x4840), whose register-direct member lands on the same bit
	// pattern. SWAP must win the slot.
	cpu, mem := newTestCPU()
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x12345678)
	mem.Write16(0x1000, 0x4840)
	cpu.SetPC(0x1000)

	cpu.dispatch[0x4840](cpu, 0x4840)

	if got := cpu.GetReg(RegD0); got != 0x56781234 {
		t.Errorf("D0 after opcode 0x4840 = %#x, want 0x56781234 (SWAP semantics)", got)
	}
}

func TestEveryFamilyClaimsAtLeastOneOpcode(t *testing.T) {
	cpu, _ := newTestCPU()
	for _, f := range instructionFamilies {
		found := false
		for o := 0; o < 65536; o++ {
			opcode := uint16(o)
			if opcode&f.mask == f.match && cpu.dispatchAssigned[o] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("family %s (mask=%#04x match=%#04x) claims no opcode", f.name, f.mask, f.match)
		}
	}
}

func TestIllegalOpcodeDistinguishesLineAAndLineF(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*vectorLineA, 0x2000)
	mem.Write32(4*vectorLineF, 0x3000)
	mem.Write32(4*vectorIllegal, 0x4000)
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)

	cpu.SetPC(0x1000)
	IllegalOpcode(cpu, 0xA123)
	if got := cpu.GetPC(); got != 0x2000 {
		t.Errorf("Line-A opcode vectored to %#x, want 0x2000", got)
	}

	cpu.SetPC(0x1000)
	IllegalOpcode(cpu, 0xF123)
	if got := cpu.GetPC(); got != 0x3000 {
		t.Errorf("Line-F opcode vectored to %#x, want 0x3000", got)
	}

	var illegal uint16 = 0xFFFF
	for o := 0; o < 65536; o++ {
		top := o & 0xF000
		if top == 0xA000 || top == 0xF000 {
			continue
		}
		if !cpu.dispatchAssigned[o] {
			illegal = uint16(o)
			break
		}
	}

	cpu.SetPC(0x1000)
	IllegalOpcode(cpu, illegal)
	if got := cpu.GetPC(); got != 0x4000 {
		t.Errorf("illegal opcode %#04x vectored to %#x, want 0x4000", illegal, got)
	}
}
