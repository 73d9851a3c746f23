// Package viz renders a solved cumulative matrix sequence in the
// terminal: a chart of one matrix element along z plus the full matrix
// at a scrubbable cursor position.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ebeamlab/belinear"
)

const (
	chartWidth  = 72
	chartHeight = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

var elementNames = []string{"m11", "m12", "m21", "m22"}

// Model holds the matrix sequence and UI cursor state.
type Model struct {
	matrices []belinear.Matrix
	h        float64
	method   string
	element  int // index into elementNames
	cursor   int // step index shown in the detail panel
}

func NewModel(ms []belinear.Matrix, h float64, method string) Model {
	return Model{
		matrices: ms,
		h:        h,
		method:   method,
		cursor:   len(ms) - 1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	step := len(m.matrices) / 100
	if step < 1 {
		step = 1
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.element = (m.element + 1) % len(elementNames)
	case "left", "h":
		m.cursor -= step
	case "right", "l":
		m.cursor += step
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.matrices) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.matrices) {
		m.cursor = len(m.matrices) - 1
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("belinear · %s · %d steps · h=%.3g m", m.method, len(m.matrices), m.h)))
	b.WriteString("\n")

	series := m.series(m.element)
	chart := asciigraph.Plot(series,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(fmt.Sprintf("%s(z)", elementNames[m.element])),
	)
	b.WriteString(graphStyle.Render(chart))
	b.WriteString("\n\n")

	mat := m.matrices[m.cursor]
	z := float64(m.cursor+1) * m.h
	b.WriteString(labelStyle.Render("cursor") + valueStyle.Render(fmt.Sprintf("step %d, z = %.6g m", m.cursor, z)) + "\n")
	b.WriteString(labelStyle.Render("matrix") + valueStyle.Render(fmt.Sprintf("[% .6e  % .6e]", mat[0][0], mat[0][1])) + "\n")
	b.WriteString(labelStyle.Render("") + valueStyle.Render(fmt.Sprintf("[% .6e  % .6e]", mat[1][0], mat[1][1])) + "\n")
	b.WriteString(labelStyle.Render("det") + valueStyle.Render(fmt.Sprintf("%.12f", mat.Det())) + "\n")
	b.WriteString(labelStyle.Render("element") + activeStyle.Render(elementNames[m.element]) + "\n")

	b.WriteString(helpStyle.Render("tab element · ←/→ scrub · g/G ends · q quit"))
	return b.String()
}

// series downsamples one matrix element along z to the chart width.
func (m Model) series(element int) []float64 {
	r, c := element/2, element%2
	n := len(m.matrices)
	if n <= chartWidth {
		out := make([]float64, n)
		for i, mat := range m.matrices {
			out[i] = mat[r][c]
		}
		return out
	}
	out := make([]float64, chartWidth)
	for i := 0; i < chartWidth; i++ {
		j := i * (n - 1) / (chartWidth - 1)
		out[i] = m.matrices[j][r][c]
	}
	return out
}

// Run launches the interactive viewer.
func Run(ms []belinear.Matrix, h float64, method string) error {
	if len(ms) == 0 {
		return fmt.Errorf("viz: nothing to view")
	}
	p := tea.NewProgram(NewModel(ms, h, method), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
