// Package m68k provides a pure Go implementation of a Motorola 68000 core
// execution engine: opcode dispatch, the cycle-budgeted fetch-decode-execute
// loop, and exception/interrupt processing.
//
// The memory bus, the interrupt-acknowledge callback, the disassembler, and
// any host debugger front-end are external collaborators the core consumes
// through narrow interfaces; none of them are implemented here.
//
// Example usage:
//
//	cpu := m68k.NewCPU()
//	cpu.SetMemoryBus(myBus)
//	cpu.PulseReset()
//	cycles := cpu.Execute(1000)
package m68k

import "sync/atomic"

// Register identifies a named CPU register for the Get/Set register API.
type Register int

// CPU registers addressable through GetReg/SetReg.
const (
	RegD0 Register = iota
	RegD1
	RegD2
	RegD3
	RegD4
	RegD5
	RegD6
	RegD7

	RegA0
	RegA1
	RegA2
	RegA3
	RegA4
	RegA5
	RegA6
	RegA7

	RegPC
	RegSR
	RegSP // alias of A7
	RegUSP
	RegISP // shadow supervisor stack pointer
)

// spcflags bits. DEBUGGER is a host-requested halt; TRACE is carried for
// parity with the data model, though nothing raises a trace exception yet.
const (
	spcflagDebugger uint32 = 1 << iota
	spcflagTrace
)

// Vector numbers used by the exception processor.
const (
	vectorReset0       = 0
	vectorReset1       = 1
	vectorBusError     = 2
	vectorAddressError = 3
	vectorIllegal      = 4
	vectorZeroDivide   = 5
	vectorCHK          = 6
	vectorTRAPV        = 7
	vectorPrivilege    = 8
	vectorTrace        = 9
	vectorLineA        = 10
	vectorLineF        = 11
	vectorUninitInt    = 15
	vectorSpurious     = 24
	vectorAutovectBase = 24
	vectorTrap0        = 32
)

// Sentinel values an IRQAcknowledger may return instead of a concrete vector.
const (
	Autovector uint32 = 0xFFFFFFFF
	Spurious   uint32 = 0xFFFFFFFE
)

// IRQAcknowledger resolves an asserted interrupt level to a vector number,
// or to one of the Autovector/Spurious sentinels. It is invoked on the
// interpreter's own thread, synchronously, during exception processing.
type IRQAcknowledger func(level int) uint32

// CPU holds the complete architectural state of a single Motorola 68000.
// A reimplementation of the reference design it is grounded on kept this
// state as process-wide globals; here it is an explicit struct passed by
// reference, so nothing prevents more than one instance coexisting.
type CPU struct {
	d [8]uint32 // D0-D7
	a [8]uint32 // A0-A7; a[7] is the active stack pointer

	pc uint32

	// Status register, decomposed. s is supervisor mode, intmask the IPL
	// mask (0-7), x/n/z/v/c the condition codes. MakeSR/MakeFromSR pack
	// and unpack the 16-bit SR value from these fields.
	s       bool
	intmask uint8
	x, n, z, v, c bool

	usp uint32 // shadow: user SP when s == true, else unused
	ssp uint32 // shadow: supervisor SP when s == false, else unused

	prefetch [2]uint16

	remainingCycles int64
	initialCycles   int64
	interruptCycles uint32

	stopped  bool
	intLevel uint8

	spcflags uint32

	// interruptCycleCost[v] is charged to interruptCycles when vector v is
	// taken via the interrupt path. Defaults to 56 everywhere (the
	// historical constant), individually overridable per vector.
	interruptCycleCost [256]uint32

	// cross-thread interrupt-pending latch; see interrupts.go.
	irqLevelToHandle    atomic.Uint32
	checkForIRQToHandle atomic.Bool

	bus IRQAcknowledger
	mem MemoryBus

	dispatch         [65536]opHandler
	dispatchAssigned [65536]bool
	dispatchSet      bool

	logger Logger
}

// NewCPU constructs a CPU with its dispatch table built and a no-op logger
// installed. The memory bus must be attached with SetMemoryBus before
// PulseReset or Execute are called.
func NewCPU() *CPU {
	cpu := &CPU{logger: nopLogger{}}
	for v := range cpu.interruptCycleCost {
		cpu.interruptCycleCost[v] = 56
	}
	BuildDispatchTable(cpu)
	return cpu
}

// SetMemoryBus attaches the host-supplied memory bridge.
func (cpu *CPU) SetMemoryBus(bus MemoryBus) {
	cpu.mem = bus
}

// SetIRQAcknowledger attaches the host callback consulted when an
// interrupt is taken. Without one installed, every interrupt resolves to
// its autovector.
func (cpu *CPU) SetIRQAcknowledger(ack IRQAcknowledger) {
	cpu.bus = ack
}

// PulseReset reinitializes architectural state as if the RESET pin had been
// pulsed: registers cleared, supervisor mode entered with intmask 7, SSP and
// PC loaded from the first two long words of the vector table, and the
// prefetch queue refilled. It is idempotent and may be called repeatedly.
func (cpu *CPU) PulseReset() {
	cpu.d = [8]uint32{}
	cpu.a = [8]uint32{}
	cpu.usp = 0
	cpu.ssp = 0

	cpu.s = true
	cpu.intmask = 7
	cpu.x, cpu.n, cpu.z, cpu.v, cpu.c = false, false, false, false, false

	cpu.stopped = false
	cpu.intLevel = 0
	cpu.spcflags = 0
	cpu.remainingCycles = 0
	cpu.initialCycles = 0
	cpu.interruptCycles = 0
	cpu.irqLevelToHandle.Store(0)
	cpu.checkForIRQToHandle.Store(false)

	if cpu.mem != nil {
		cpu.a[7] = cpu.mem.Read32(0)
		cpu.pc = cpu.mem.Read32(4)
	} else {
		cpu.a[7] = 0
		cpu.pc = 0
	}

	cpu.refillPrefetch(cpu.pc, 0)
}

// GetReg returns the value of a named register. Unknown ids return 0.
func (cpu *CPU) GetReg(reg Register) uint32 {
	switch {
	case reg >= RegD0 && reg <= RegD7:
		return cpu.d[reg-RegD0]
	case reg >= RegA0 && reg <= RegA7:
		return cpu.a[reg-RegA0]
	}
	switch reg {
	case RegPC:
		return cpu.pc
	case RegSR:
		return uint32(cpu.MakeSR())
	case RegSP:
		return cpu.a[7]
	case RegUSP:
		if cpu.s {
			return cpu.usp
		}
		return cpu.a[7]
	case RegISP:
		if !cpu.s {
			return cpu.ssp
		}
		return cpu.a[7]
	default:
		return 0
	}
}

// SetReg writes a named register. Writing RegSR may trigger a supervisor
// stack pointer swap if the s bit changes.
func (cpu *CPU) SetReg(reg Register, value uint32) {
	switch {
	case reg >= RegD0 && reg <= RegD7:
		cpu.d[reg-RegD0] = value
		return
	case reg >= RegA0 && reg <= RegA7:
		cpu.a[reg-RegA0] = value
		return
	}
	switch reg {
	case RegPC:
		cpu.pc = value
	case RegSR:
		cpu.MakeFromSR(uint16(value))
	case RegSP:
		cpu.a[7] = value
	case RegUSP:
		if cpu.s {
			cpu.usp = value
		} else {
			cpu.a[7] = value
		}
	case RegISP:
		if !cpu.s {
			cpu.ssp = value
		} else {
			cpu.a[7] = value
		}
	}
}

// GetPC returns the program counter.
func (cpu *CPU) GetPC() uint32 { return cpu.pc }

// SetPC sets the program counter and resynchronizes the prefetch queue.
func (cpu *CPU) SetPC(addr uint32) {
	cpu.pc = addr
	cpu.refillPrefetch(addr, 0)
}

// IsValidInstruction reports whether opcode resolves to a handler other
// than the shared illegal-opcode handler.
func (cpu *CPU) IsValidInstruction(opcode uint16) bool {
	return cpu.dispatchAssigned[opcode]
}

// SetInterruptCycleCost overrides the cycle charge for a specific vector
// when it is taken through the interrupt path (as opposed to a synchronous
// exception, which always costs a fixed 4 cycles).
func (cpu *CPU) SetInterruptCycleCost(vector int, cycles uint32) {
	if vector < 0 || vector > 255 {
		return
	}
	cpu.interruptCycleCost[vector] = cycles
}

// Context is a serializable snapshot of architectural state, suitable for
// save-state style persistence. It deliberately excludes memory contents —
// that remains the caller's responsibility, per the core's external
// interface contract.
type Context struct {
	D, A                  [8]uint32
	PC                    uint32
	SR                    uint16
	USP, SSP              uint32
	Prefetch              [2]uint16
	RemainingCycles       int64
	InitialCycles         int64
	InterruptCycles       uint32
	Stopped               bool
	IntLevel              uint8
	Spcflags              uint32
}

// GetContext returns a copy of the current architectural state.
func (cpu *CPU) GetContext() *Context {
	ctx := &Context{
		D:               cpu.d,
		A:               cpu.a,
		PC:              cpu.pc,
		SR:              cpu.MakeSR(),
		USP:             cpu.usp,
		SSP:             cpu.ssp,
		Prefetch:        cpu.prefetch,
		RemainingCycles: cpu.remainingCycles,
		InitialCycles:   cpu.initialCycles,
		InterruptCycles: cpu.interruptCycles,
		Stopped:         cpu.stopped,
		IntLevel:        cpu.intLevel,
		Spcflags:        cpu.spcflags,
	}
	return ctx
}

// SetContext restores a previously captured architectural state.
func (cpu *CPU) SetContext(ctx *Context) {
	cpu.d = ctx.D
	cpu.a = ctx.A
	cpu.pc = ctx.PC
	cpu.MakeFromSR(ctx.SR)
	cpu.usp = ctx.USP
	cpu.ssp = ctx.SSP
	cpu.prefetch = ctx.Prefetch
	cpu.remainingCycles = ctx.RemainingCycles
	cpu.initialCycles = ctx.InitialCycles
	cpu.interruptCycles = ctx.InterruptCycles
	cpu.stopped = ctx.Stopped
	cpu.intLevel = ctx.IntLevel
	cpu.spcflags = ctx.Spcflags
}

// SetTrace sets the TRACE spcflag bit. No trace-exception generator
// consumes it yet; this exists so a future tracer has a place to hook in.
func (cpu *CPU) SetTrace()   { cpu.spcflags |= spcflagTrace }
func (cpu *CPU) ClearTrace() { cpu.spcflags &^= spcflagTrace }
func (cpu *CPU) Tracing() bool { return cpu.spcflags&spcflagTrace != 0 }
