package m68k

// Status register bit layout, packed/unpacked by MakeSR/MakeFromSR.
// Upper byte: T(7) S(5) I2 I1 I0(10-8). Lower byte: X(4) N(3) Z(2) V(1) C(0).
const (
	srBitC       = 0
	srBitV       = 1
	srBitZ       = 2
	srBitN       = 3
	srBitX       = 4
	srBitIntmask = 8
	srBitS       = 13
)

// MakeSR reassembles the 16-bit status register from the decomposed flag
// fields. Writing the result back through MakeFromSR is a no-op.
func (cpu *CPU) MakeSR() uint16 {
	var sr uint16
	if cpu.c {
		sr |= 1 << srBitC
	}
	if cpu.v {
		sr |= 1 << srBitV
	}
	if cpu.z {
		sr |= 1 << srBitZ
	}
	if cpu.n {
		sr |= 1 << srBitN
	}
	if cpu.x {
		sr |= 1 << srBitX
	}
	sr |= uint16(cpu.intmask&0x07) << srBitIntmask
	if cpu.s {
		sr |= 1 << srBitS
	}
	return sr
}

// MakeFromSR decomposes a packed 16-bit status register value into the
// fast scalar flag fields, swapping the active stack pointer with its
// shadow if the supervisor bit changed.
func (cpu *CPU) MakeFromSR(sr uint16) {
	cpu.c = sr&(1<<srBitC) != 0
	cpu.v = sr&(1<<srBitV) != 0
	cpu.z = sr&(1<<srBitZ) != 0
	cpu.n = sr&(1<<srBitN) != 0
	cpu.x = sr&(1<<srBitX) != 0
	cpu.intmask = uint8((sr >> srBitIntmask) & 0x07)

	newS := sr&(1<<srBitS) != 0
	if newS != cpu.s {
		cpu.swapStackPointers()
	}
	cpu.s = newS
}

// swapStackPointers exchanges a[7] with its shadow (usp when entering
// supervisor mode, ssp when leaving it). It does not change s itself, so it
// is involutive only together with the s toggle MakeFromSR performs: two
// round-trip SR writes that flip s restore both banks to where they started.
func (cpu *CPU) swapStackPointers() {
	if cpu.s {
		// currently supervisor: a[7] is SSP, shadow holds USP. The
		// departing SSP goes into the ssp shadow, not back into usp.
		cpu.ssp, cpu.a[7] = cpu.a[7], cpu.usp
	} else {
		// currently user: a[7] is USP, shadow holds SSP. The departing
		// USP goes into the usp shadow, not back into ssp.
		cpu.usp, cpu.a[7] = cpu.a[7], cpu.ssp
	}
}

// Condition codes used by Bcc/DBcc/Scc/TRAPcc.
const (
	CondT  = 0
	CondF  = 1
	CondHI = 2
	CondLS = 3
	CondCC = 4
	CondCS = 5
	CondNE = 6
	CondEQ = 7
	CondVC = 8
	CondVS = 9
	CondPL = 10
	CondMI = 11
	CondGE = 12
	CondLT = 13
	CondGT = 14
	CondLE = 15
)

// testCondition evaluates one of the sixteen standard condition codes
// against the current flags.
func (cpu *CPU) testCondition(cond int) bool {
	c, v, z, n := cpu.c, cpu.v, cpu.z, cpu.n
	switch cond {
	case CondT:
		return true
	case CondF:
		return false
	case CondHI:
		return !c && !z
	case CondLS:
		return c || z
	case CondCC:
		return !c
	case CondCS:
		return c
	case CondNE:
		return !z
	case CondEQ:
		return z
	case CondVC:
		return !v
	case CondVS:
		return v
	case CondPL:
		return !n
	case CondMI:
		return n
	case CondGE:
		return (n && v) || (!n && !v)
	case CondLT:
		return (n && !v) || (!n && v)
	case CondGT:
		return (n && v && !z) || (!n && !v && !z)
	case CondLE:
		return z || (n && !v) || (!n && v)
	default:
		return false
	}
}

// setFlagsLogical sets N and Z from result and clears V and C, as AND/OR/EOR/
// MOVE/CLR/TST/NOT do. size is in bits (8, 16, or 32).
func (cpu *CPU) setFlagsLogical(result uint32, size int) {
	cpu.v = false
	cpu.c = false
	switch size {
	case 8:
		cpu.n = result&0x80 != 0
		cpu.z = result&0xFF == 0
	case 16:
		cpu.n = result&0x8000 != 0
		cpu.z = result&0xFFFF == 0
	default:
		cpu.n = result&0x80000000 != 0
		cpu.z = result == 0
	}
}

// setFlagsAdd sets X/N/Z/V/C for dest+src=result, size in bits. dest, src,
// and result must already be masked to size by the caller; carry is
// recomputed from the unmasked operand sum rather than trusting a carry bit
// the masked result no longer carries.
func (cpu *CPU) setFlagsAdd(dest, src, result uint32, size int) {
	var sm, dm, rm bool
	var carry bool
	switch size {
	case 8:
		sm, dm, rm = src&0x80 != 0, dest&0x80 != 0, result&0x80 != 0
		carry = dest+src > 0xFF
	case 16:
		sm, dm, rm = src&0x8000 != 0, dest&0x8000 != 0, result&0x8000 != 0
		carry = dest+src > 0xFFFF
	default:
		sm, dm, rm = src&0x80000000 != 0, dest&0x80000000 != 0, result&0x80000000 != 0
		carry = uint64(src)+uint64(dest) > 0xFFFFFFFF
	}
	cpu.setFlagsLogical(result, size)
	cpu.c = carry
	cpu.x = carry
	cpu.v = (sm && dm && !rm) || (!sm && !dm && rm)
}

// setFlagsSub sets X/N/Z/V/C for dest-src=result, size in bits. Like
// setFlagsAdd, borrow is recomputed from the operands directly rather than
// from a borrow bit the masked result can't carry.
func (cpu *CPU) setFlagsSub(dest, src, result uint32, size int) {
	var sm, dm, rm bool
	switch size {
	case 8:
		sm, dm, rm = src&0x80 != 0, dest&0x80 != 0, result&0x80 != 0
	case 16:
		sm, dm, rm = src&0x8000 != 0, dest&0x8000 != 0, result&0x8000 != 0
	default:
		sm, dm, rm = src&0x80000000 != 0, dest&0x80000000 != 0, result&0x80000000 != 0
	}
	borrow := src > dest
	cpu.setFlagsLogical(result, size)
	cpu.c = borrow
	cpu.x = borrow
	cpu.v = (!sm && dm && !rm) || (sm && !dm && rm)
}

func signExtend8(value uint32) uint32 {
	if value&0x80 != 0 {
		return value | 0xFFFFFF00
	}
	return value & 0xFF
}

func signExtend16(value uint32) uint32 {
	if value&0x8000 != 0 {
		return value | 0xFFFF0000
	}
	return value & 0xFFFF
}

func maskValue(value uint32, size int) uint32 {
	switch size {
	case 8:
		return value & 0xFF
	case 16:
		return value & 0xFFFF
	default:
		return value
	}
}
