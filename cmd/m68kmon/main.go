package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/urfave/cli.v2"

	"github.com/retrocore/m68k"
)

// flatMemory maps the entire 24-bit 68000 address space onto a single
// byte slice. ROM images are loaded at address 0; everything above the
// image is writable RAM.
type flatMemory struct {
	ram [1 << 24]byte
}

func (m *flatMemory) Read8(address uint32) uint8 {
	return m.ram[address&0xFFFFFF]
}

func (m *flatMemory) Read16(address uint32) uint16 {
	addr := address & 0xFFFFFF
	return uint16(m.ram[addr])<<8 | uint16(m.ram[addr+1])
}

func (m *flatMemory) Read32(address uint32) uint32 {
	addr := address & 0xFFFFFF
	return uint32(m.ram[addr])<<24 | uint32(m.ram[addr+1])<<16 |
		uint32(m.ram[addr+2])<<8 | uint32(m.ram[addr+3])
}

func (m *flatMemory) Write8(address uint32, value uint8) {
	m.ram[address&0xFFFFFF] = value
}

func (m *flatMemory) Write16(address uint32, value uint16) {
	addr := address & 0xFFFFFF
	m.ram[addr] = uint8(value >> 8)
	m.ram[addr+1] = uint8(value)
}

func (m *flatMemory) Write32(address uint32, value uint32) {
	addr := address & 0xFFFFFF
	m.ram[addr] = uint8(value >> 24)
	m.ram[addr+1] = uint8(value >> 16)
	m.ram[addr+2] = uint8(value >> 8)
	m.ram[addr+3] = uint8(value)
}

func (m *flatMemory) loadROM(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := f.Read(m.ram[:])
	if err != nil && n == 0 {
		return err
	}
	return nil
}

// consoleLogger writes core diagnostics to stderr, prefixed so they don't
// get lost among the register dump on stdout.
type consoleLogger struct{}

func (consoleLogger) Log(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "m68kmon: "+format+"\n", args...)
}

func main() {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "flat ROM image loaded at address 0",
			},
			&cli.IntFlag{
				Name:    "cycles",
				Aliases: []string{"c"},
				Usage:   "total cycle budget to run",
				Value:   10000,
			},
			&cli.IntFlag{
				Name:  "chunk",
				Usage: "cycles per Execute call, for interrupt-injection pacing",
				Value: 1000,
			},
			&cli.BoolFlag{
				Name:  "irq",
				Usage: "inject a timed interrupt from a second goroutine while running",
			},
			&cli.IntFlag{
				Name:  "irq-level",
				Usage: "interrupt level to inject when -irq is set",
				Value: 4,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log illegal opcodes, RESET instructions, and out-of-range interrupt vectors",
			},
		},
		Name:    "m68kmon",
		Usage:   "run a flat 68000 ROM image against the core execution engine",
		Version: "v0.0.1",
		Action: func(c *cli.Context) error {
			romPath := c.String("rom")
			if romPath == "" {
				cli.ShowAppHelp(c)
				return cli.Exit("", 86)
			}

			mem := &flatMemory{}
			if err := mem.loadROM(romPath); err != nil {
				return cli.Exit(fmt.Sprintf("loading ROM: %v", err), 1)
			}

			cpu := m68k.NewCPU()
			cpu.SetMemoryBus(mem)
			if c.Bool("verbose") {
				cpu.SetLogger(consoleLogger{})
			}
			cpu.PulseReset()

			budget := c.Int("cycles")
			chunk := c.Int("chunk")
			if chunk <= 0 || chunk > budget {
				chunk = budget
			}

			if c.Bool("irq") {
				level := c.Int("irq-level")
				go func() {
					time.Sleep(time.Duration(budget/2) * time.Microsecond)
					cpu.SetIRQ(level)
				}()
			}

			run := 0
			for run < budget {
				want := chunk
				if run+want > budget {
					want = budget - run
				}
				run += cpu.Execute(want)
			}

			printRegisters(cpu, run)
			return nil
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	app.Run(os.Args)
}

func printRegisters(cpu *m68k.CPU, cyclesRun int) {
	for i := 0; i < 8; i++ {
		fmt.Printf("D%d=%08X  A%d=%08X\n", i, cpu.GetReg(m68k.Register(int(m68k.RegD0)+i)), i, cpu.GetReg(m68k.Register(int(m68k.RegA0)+i)))
	}
	fmt.Printf("PC=%08X  SR=%04X\n", cpu.GetReg(m68k.RegPC), cpu.GetReg(m68k.RegSR))
	fmt.Printf("cycles run: %d\n", cyclesRun)
}
