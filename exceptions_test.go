package m68k

import "testing"

func TestExceptionPushesThreeWordFrameAndSwitchesSupervisor(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*vectorIllegal, 0x8000)
	cpu.PulseReset()

	// Drop to user mode with a distinct USP so the frame lands on the
	// (post-swap) supervisor stack, not wherever user code left A7.
	cpu.SetReg(RegUSP, 0x1000)
	sr := cpu.MakeSR()
	cpu.MakeFromSR(sr &^ (1 << srBitS))
	cpu.SetReg(RegA7, 0x1000)
	cpu.SetReg(RegISP, 0x9000) // supervisor shadow, to be restored on entry

	cpu.SetPC(0x2000)
	savedPC := cpu.GetPC()
	userSR := cpu.MakeSR() // the SR actually in effect (user mode) when the exception fires

	cpu.Exception(vectorIllegal)

	if !cpu.s {
		t.Fatal("Exception should switch to supervisor mode")
	}
	if got := cpu.GetPC(); got != 0x8000 {
		t.Errorf("PC after Exception = %#x, want 0x8000", got)
	}
	if got := cpu.a[7]; got != 0x9000-6 {
		t.Errorf("A7 after pushing 3-word frame = %#x, want %#x", got, 0x9000-6)
	}
	gotSR := cpu.readMem(cpu.a[7], 16)
	gotPC := cpu.readMem(cpu.a[7]+2, 32)
	if uint16(gotSR) != userSR {
		t.Errorf("pushed SR = %#04x, want %#04x", gotSR, userSR)
	}
	if gotPC != savedPC {
		t.Errorf("pushed PC = %#x, want %#x", gotPC, savedPC)
	}
}

func TestExceptionVectorZeroSubstitutesUninitializedInterrupt(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*vectorUninitInt, 0xABCD)
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)

	cpu.Exception(vectorTrap0) // vector table entry for TRAP #0 left at zero

	if got := cpu.GetPC(); got != 0xABCD {
		t.Errorf("PC = %#x, want 0xABCD (uninitialized-interrupt vector)", got)
	}
}

func TestExceptionInterruptAutovector(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*(vectorAutovectBase+3), 0x5000)
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)

	cpu.exceptionInterrupt(3)

	if got := cpu.GetPC(); got != 0x5000 {
		t.Errorf("PC = %#x, want 0x5000", got)
	}
	if cpu.intmask != 3 {
		t.Errorf("intmask = %d, want 3", cpu.intmask)
	}
	if cpu.interruptCycles != 56 {
		t.Errorf("interruptCycles = %d, want 56", cpu.interruptCycles)
	}
}

func TestExceptionInterruptSpurious(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*vectorSpurious, 0x6000)
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)
	cpu.SetIRQAcknowledger(func(level int) uint32 { return Spurious })

	cpu.exceptionInterrupt(5)

	if got := cpu.GetPC(); got != 0x6000 {
		t.Errorf("PC = %#x, want 0x6000 (spurious vector)", got)
	}
}

func TestExceptionInterruptUserVector(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*200, 0x7000)
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)
	cpu.SetIRQAcknowledger(func(level int) uint32 { return 200 })

	cpu.exceptionInterrupt(2)

	if got := cpu.GetPC(); got != 0x7000 {
		t.Errorf("PC = %#x, want 0x7000 (host-supplied vector)", got)
	}
}

func TestExceptionInterruptOutOfRangeVectorAborts(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)
	cpu.SetPC(0x1234)
	cpu.SetIRQAcknowledger(func(level int) uint32 { return 999 })

	cpu.exceptionInterrupt(6)

	if got := cpu.GetPC(); got != 0x1234 {
		t.Errorf("PC after aborted interrupt = %#x, want unchanged 0x1234", got)
	}
}

func TestExceptionInterruptClearsStoppedUnconditionally(t *testing.T) {
	cpu, mem := newTestCPU()
	mem.Write32(4*(vectorAutovectBase+1), 0x4000)
	cpu.PulseReset()
	cpu.SetReg(RegA7, 0x9000)
	cpu.stopped = true

	cpu.exceptionInterrupt(1)

	if cpu.stopped {
		t.Error("exceptionInterrupt should clear stopped unconditionally")
	}
}
