package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hejops/i8080/bdos"
	"github.com/hejops/i8080/bus"
	"github.com/hejops/i8080/cpu"
	"github.com/hejops/i8080/debugger"
	"github.com/hejops/i8080/ports"
	"github.com/hejops/i8080/rom"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "i8080",
		Short: "Intel 8080 emulator core — Space Invaders and CP/M test ROM host",
	}

	var romDir string
	var maxCycles int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the Space Invaders ROM in romDir until maxCycles is exhausted",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := bus.NewSpaceInvaders()
			if err := rom.LoadSpaceInvaders(romDir, b); err != nil {
				return err
			}

			c := cpu.New()
			p := &ports.Ports{}

			var cycles int
			for cycles < maxCycles {
				cycles += int(c.Step(b, p))
			}
			fmt.Printf("ran %d cycles, PC=%04x\n", cycles, c.PC)
			return nil
		},
	}
	runCmd.Flags().StringVar(&romDir, "rom-dir", ".", "directory containing invaders.h/g/f/e")
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 1_000_000, "cycle budget before exiting")

	var comFile string
	var testMaxCycles int

	testCmd := &cobra.Command{
		Use:   "test",
		Short: "Run a CP/M-style .COM conformance ROM (CPUDIAG, 8080EXER) to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := bus.NewFlat()
			if err := rom.LoadComFile(comFile, m); err != nil {
				return err
			}
			// CPUDIAG/8080EXER start at 0x0100 and call through 0x0005
			// (BDOS) to print results; a sentinel RET there guards
			// against runaway execution if the ROM ever CALLs 5 before
			// bdos.Trap intercepts PC.
			m.Write(0x0005, 0xC9)

			c := cpu.New()
			c.PC = 0x0100

			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()

			var cycles int
			for cycles < testMaxCycles {
				if bdos.Trap(c, m, out) {
					continue
				}
				cycles += int(c.Step(m, noIO{}))
			}
			return nil
		},
	}
	testCmd.Flags().StringVar(&comFile, "com", "", "path to the .COM image")
	testCmd.Flags().IntVar(&testMaxCycles, "max-cycles", 100_000_000, "cycle budget before exiting")

	var debugRomDir string

	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Launch the interactive single-step TUI over the Space Invaders ROM",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := bus.NewSpaceInvaders()
			if err := rom.LoadSpaceInvaders(debugRomDir, b); err != nil {
				return err
			}
			c := cpu.New()
			p := &ports.Ports{}
			return debugger.Run(c, b, p, 0x0000)
		},
	}
	debugCmd.Flags().StringVar(&debugRomDir, "rom-dir", ".", "directory containing invaders.h/g/f/e")

	var disasmRomDir string
	var disasmStart int
	var disasmCount int

	disasmCmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble a range of the Space Invaders ROM",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := bus.NewSpaceInvaders()
			if err := rom.LoadSpaceInvaders(disasmRomDir, b); err != nil {
				return err
			}

			addr := uint16(disasmStart)
			for i := 0; i < disasmCount; i++ {
				text, size := cpu.Disassemble(b, addr)
				fmt.Printf("%04x  %s\n", addr, text)
				addr += size
			}
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&disasmRomDir, "rom-dir", ".", "directory containing invaders.h/g/f/e")
	disasmCmd.Flags().IntVar(&disasmStart, "start", 0x0000, "address to start disassembling at")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 32, "number of instructions to print")

	rootCmd.AddCommand(runCmd, testCmd, debugCmd, disasmCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// noIO satisfies cpu.IO for conformance test ROMs, which never execute
// IN/OUT.
type noIO struct{}

func (noIO) In(port uint8) uint8      { return 0 }
func (noIO) Out(port uint8, val uint8) {}
