package m68k

// Asynchronous interrupt injection and its synchronous delivery path.
//
// Only two fields cross threads: the requested level and the flag that
// says a request is pending. The producer releases the flag after writing
// the level; the consumer (inside Execute's loop) acquires the flag,
// clears it, and then reads the level — single-producer/single-consumer,
// no mutex, last-writer-wins.

// SetIRQ asserts an interrupt request at the given level (0-7). It may be
// called from any goroutine. If the CPU is currently stopped it cannot be
// in Execute's loop to observe the latch, so delivery happens synchronously
// here instead; racing with the loop is impossible because stopped is only
// ever cleared by the loop itself, inside exceptionInterrupt.
func (cpu *CPU) SetIRQ(level int) {
	if level < 0 {
		level = 0
	}
	if level > 7 {
		level = 7
	}
	if cpu.stopped {
		cpu.SetIRQ2(level)
		return
	}
	cpu.irqLevelToHandle.Store(uint32(level))
	cpu.checkForIRQToHandle.Store(true)
}

// SetIRQ2 delivers an interrupt request synchronously, on the interpreter
// thread: at Execute's poll point, or via SetIRQ's stopped-CPU path above.
// Level 7 is edge-triggered NMI — it is taken on every 0→7 (or any
// non-7→7) transition regardless of intmask; every other level is taken
// only if it exceeds the current mask.
func (cpu *CPU) SetIRQ2(level int) {
	oldLevel := cpu.intLevel
	cpu.intLevel = uint8(level)

	if oldLevel != 7 && level == 7 {
		cpu.exceptionInterrupt(7)
		return
	}
	if level > int(cpu.intmask) {
		cpu.exceptionInterrupt(level)
	}
}

// checkInterrupts is Execute's poll-point hook: it atomically consumes the
// pending-IRQ latch, if set, and delivers it via SetIRQ2.
func (cpu *CPU) checkInterrupts() {
	if !cpu.checkForIRQToHandle.CompareAndSwap(true, false) {
		return
	}
	level := int(cpu.irqLevelToHandle.Load())
	cpu.SetIRQ2(level)
}
