package m68k

import "testing"

// TestANDClearsUnsetBits tests AND.L D1, D0 (ea -> Dn direction).
func TestANDClearsUnsetBits(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xC081) // AND.L D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0xFF00FF00)
	cpu.SetReg(RegD1, 0x0F0F0F0F)

	cpu.Execute(4) // AND's fixed cost

	if got := cpu.GetReg(RegD0); got != 0x0F000F00 {
		t.Errorf("D0 = %#x, want 0x0f000f00", got)
	}
}

// TestORSetsBits tests OR.W D1, D0, confirming only the low word changes.
func TestORSetsBits(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x8041) // OR.W D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x1234F0F0)
	cpu.SetReg(RegD1, 0x00000F0F)

	cpu.Execute(4)

	if got := cpu.GetReg(RegD0); got != 0x1234FFFF {
		t.Errorf("D0 = %#x, want 0x1234ffff", got)
	}
}

// TestEORTogglesBits tests EOR.W D0, D1, which always writes to the <ea>
// operand rather than taking a direction bit.
func TestEORTogglesBits(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xB141) // EOR.W D0, D1
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x0000AAAA)
	cpu.SetReg(RegD1, 0x00005555)

	cpu.Execute(4)

	if got := cpu.GetReg(RegD1); got != 0x0000FFFF {
		t.Errorf("D1 = %#x, want 0x0000ffff", got)
	}
}

// TestANDIMasksImmediate tests ANDI.B #$0F, D0.
func TestANDIMasksImmediate(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0200) // ANDI.B #$0F, D0
	mem.Write16(0x402, 0x000F)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x000000FF)

	cpu.Execute(8) // ANDI's fixed cost

	if got := cpu.GetReg(RegD0) & 0xFF; got != 0x0F {
		t.Errorf("D0&0xFF = %#x, want 0x0f", got)
	}
}

// TestORISetsImmediateBits tests ORI.B #$F0, D0.
func TestORISetsImmediateBits(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0000) // ORI.B #$F0, D0
	mem.Write16(0x402, 0x00F0)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x0000000F)

	cpu.Execute(8)

	if got := cpu.GetReg(RegD0) & 0xFF; got != 0xFF {
		t.Errorf("D0&0xFF = %#x, want 0xff", got)
	}
}

// TestEORIFlipsImmediateBits tests EORI.W #$FFFF, D0.
func TestEORIFlipsImmediateBits(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0A40) // EORI.W #$FFFF, D0
	mem.Write16(0x402, 0xFFFF)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x00001234)

	cpu.Execute(8)

	if got := cpu.GetReg(RegD0) & 0xFFFF; got != 0xEDCB {
		t.Errorf("D0&0xFFFF = %#x, want 0xedcb", got)
	}
}

// TestMOVEPWordToMemory tests MOVEP.W D0, (N,A1): the two bytes of D0's low
// word land at successive even addresses, high byte first.
func TestMOVEPWordToMemory(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0189) // MOVEP.W D0, (16,A1)
	mem.Write16(0x402, 0x0010) // displacement
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x0000ABCD)
	cpu.SetReg(RegA1, 0x2000)

	cpu.Execute(16) // MOVEP's fixed cost

	if got := mem.Read8(0x2010); got != 0xAB {
		t.Errorf("memory[0x2010] = %#x, want 0xab", got)
	}
	if got := mem.Read8(0x2012); got != 0xCD {
		t.Errorf("memory[0x2012] = %#x, want 0xcd", got)
	}
}

// TestBTSTStaticReportsSetBit tests BTST #3, D0 against a register operand,
// which takes the bit number mod 32.
func TestBTSTStaticReportsSetBit(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0800) // BTST #3, D0
	mem.Write16(0x402, 0x0003)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x00000008)

	cpu.Execute(4) // register-direct BTST cost

	if cpu.z {
		t.Error("Z should be clear: bit 3 is set in D0")
	}
}

// TestBCLRStaticClearsBit tests BCLR #1, D0.
func TestBCLRStaticClearsBit(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0880) // BCLR #1, D0
	mem.Write16(0x402, 0x0001)
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0xFFFFFFFF)

	cpu.Execute(8) // register-direct BCLR cost

	if got := cpu.GetReg(RegD0); got != 0xFFFFFFFD {
		t.Errorf("D0 = %#x, want 0xfffffffd", got)
	}
}

// TestBTSTDynamicUsesRegisterBitNumber tests BTST D1, D0, where the bit
// number comes from a data register instead of an extension word.
func TestBTSTDynamicUsesRegisterBitNumber(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0x0300) // BTST D1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x00000004)
	cpu.SetReg(RegD1, 2)

	cpu.Execute(4)

	if cpu.z {
		t.Error("Z should be clear: bit 2 is set in D0")
	}
}

// TestLSLRegisterShiftsLeft tests LSL.W #1, D0.
func TestLSLRegisterShiftsLeft(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xE348) // LSL.W #1, D0
	cpu.PulseReset()
	cpu.SetReg(RegD0, 0x00000003)

	cpu.Execute(8) // 6 + count(1)*2

	if got := cpu.GetReg(RegD0) & 0xFFFF; got != 0x0006 {
		t.Errorf("D0&0xFFFF = %#x, want 0x0006", got)
	}
}

// TestASLMemoryShiftsSingleBit tests the memory form of a shift, which
// always moves exactly one bit regardless of any count field.
func TestASLMemoryShiftsSingleBit(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(0, 0x00001000)
	mem.Write32(4, 0x00000400)
	mem.Write16(0x400, 0xE1D1) // ASL (A1)
	cpu.PulseReset()
	cpu.SetReg(RegA1, 0x3000)
	mem.Write16(0x3000, 0x4000)

	cpu.Execute(8) // memory-form shift's fixed cost

	if got := mem.Read16(0x3000); got != 0x8000 {
		t.Errorf("memory[0x3000] = %#x, want 0x8000", got)
	}
	if cpu.c {
		t.Error("C should be clear: the shifted-out bit was 0")
	}
}
