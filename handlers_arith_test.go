package m68k

import "testing"

// TestADDQInstruction tests ADDQ.L #5, D0.
func TestADDQInstruction(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x5A80) // ADDQ.L #5, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 10)

	cpu.Execute(10)

	if got := cpu.GetReg(RegD0); got != 15 {
		t.Errorf("D0 = %d, want 15", got)
	}
}

// TestSUBQInstruction tests SUBQ.L #3, D0.
func TestSUBQInstruction(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x5780) // SUBQ.L #3, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 10)

	cpu.Execute(10)

	if got := cpu.GetReg(RegD0); got != 7 {
		t.Errorf("D0 = %d, want 7", got)
	}
}

// TestADDQZeroFieldMeansEight tests that a 3-bit data field of 0 encodes 8,
// not 0.
func TestADDQZeroFieldMeansEight(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x5080) // ADDQ.L #8, D0 (field 000 -> 8)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 1)

	cpu.Execute(10)

	if got := cpu.GetReg(RegD0); got != 9 {
		t.Errorf("D0 = %d, want 9", got)
	}
}

// TestADDSetsCarryAndZero tests ADD.B across the byte boundary.
func TestADDSetsCarryAndZero(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xD001) // ADD.B D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0xFF)
	cpu.SetReg(RegD1, 0x01)

	cpu.Execute(4) // exactly ADD's cost

	if got := cpu.GetReg(RegD0) & 0xFF; got != 0 {
		t.Errorf("D0&0xFF = %#x, want 0", got)
	}
	if !cpu.c {
		t.Error("C flag should be set on 0xFF+0x01")
	}
	if !cpu.z {
		t.Error("Z flag should be set")
	}
}

// TestCMPSetsFlagsWithoutModifyingOperands tests that CMP leaves D0
// unchanged.
func TestCMPSetsFlagsWithoutModifyingOperands(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xB081) // CMP.L D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 5)
	cpu.SetReg(RegD1, 5)

	cpu.Execute(4) // exactly CMP's cost

	if got := cpu.GetReg(RegD0); got != 5 {
		t.Errorf("D0 = %d, want unchanged 5", got)
	}
	if !cpu.z {
		t.Error("Z flag should be set for equal operands")
	}
}

// TestDIVUByZeroRaisesException tests that dividing by zero takes the
// zero-divide vector instead of computing a result.
func TestDIVUByZeroRaisesException(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*vectorZeroDivide, 0x00009000)
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x80C1) // DIVU D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0xA000)
	cpu.SetReg(RegD0, 100)
	cpu.SetReg(RegD1, 0)

	cpu.Execute(4) // exactly the zero-divide trap cost

	if got := cpu.GetPC(); got != 0x9000 {
		t.Errorf("pc = %#x, want 0x9000 (zero-divide vector)", got)
	}
}

// TestDIVUComputesQuotientAndRemainder tests a normal in-range division.
func TestDIVUComputesQuotientAndRemainder(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x80C1) // DIVU D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 17)
	cpu.SetReg(RegD1, 5)

	cpu.Execute(200)

	got := cpu.GetReg(RegD0)
	if quotient := got & 0xFFFF; quotient != 3 {
		t.Errorf("quotient = %d, want 3", quotient)
	}
	if remainder := got >> 16; remainder != 2 {
		t.Errorf("remainder = %d, want 2", remainder)
	}
}

// TestABCDPackedDigitAddition tests ABCD on two data registers.
func TestABCDPackedDigitAddition(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xC100) // ABCD D0, D0 (rx=0, ry=0)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x15) // BCD 15

	cpu.Execute(10)

	if got := cpu.GetReg(RegD0) & 0xFF; got != 0x30 {
		t.Errorf("D0&0xFF = %#02x, want 0x30 (15+15=30 in BCD)", got)
	}
}
