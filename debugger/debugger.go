// Package debugger provides an interactive single-step bubbletea TUI over
// a cpu.Cpu, adapted from the teacher's 6502 debugger to the 8080's
// register file and opcode table.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/hejops/i8080/cpu"
)

type model struct {
	cpu *cpu.Cpu
	mem cpu.Memory
	io  cpu.IO

	offset uint16 // base address for the memory page table
	prevPC uint16
	error  error
}

// New returns a bubbletea model that single-steps c against mem/io,
// starting its memory page table display at offset.
func New(c *cpu.Cpu, mem cpu.Memory, io cpu.IO, offset uint16) tea.Model {
	return model{cpu: c, mem: mem, io: io, offset: offset}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.PC
			m.cpu.Step(m.mem, m.io)
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte page as a line, highlighting PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.mem.Read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Flags.Sign,
		m.cpu.Flags.Zero,
		m.cpu.Flags.AuxCarry,
		m.cpu.Flags.Parity,
		m.cpu.Flags.Carry,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x
BC: %04x
DE: %04x
HL: %04x
S Z A P C
`,
		m.cpu.PC,
		m.prevPC,
		m.cpu.SP,
		m.cpu.A,
		m.cpu.BC(),
		m.cpu.DE(),
		m.cpu.HL(),
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pcPage := m.cpu.PC - m.cpu.PC%16
	pages := []string{header}
	offsets := []uint16{
		m.offset, m.offset + 16, m.offset + 32,
		pcPage, pcPage + 16, pcPage + 32,
	}
	for _, o := range offsets {
		pages = append(pages, m.renderPage(o))
	}
	return strings.Join(pages, "\n")
}

func (m model) View() string {
	text, _ := cpu.Disassemble(m.mem, m.cpu.PC)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		text,
		spew.Sdump(cpu.Opcodes[m.mem.Read(m.cpu.PC)]),
	)
}

// Run starts the interactive TUI, blocking until the user quits.
func Run(c *cpu.Cpu, mem cpu.Memory, io cpu.IO, offset uint16) error {
	m, err := tea.NewProgram(New(c, mem, io, offset)).Run()
	if err != nil {
		return err
	}
	if x, ok := m.(model); ok && x.error != nil {
		return x.error
	}
	return nil
}
