package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"golang.org/x/term"

	"github.com/san-kum/circlebench/internal/frame"
)

const (
	chromeRows = 2
	statsRows  = 9
	graphRows  = 4
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	runStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	pauseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(1)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).PaddingLeft(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type frameMsg struct{}

func nextFrame() tea.Msg { return frameMsg{} }

// DisplayAvailable reports whether stdout is a terminal that can host the
// interactive view.
func DisplayAvailable() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalViewport returns the pixel viewport for the current terminal, or
// ok=false when the size cannot be read.
func TerminalViewport(showStats bool) (w, h int, ok bool) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, false
	}
	w, h = viewportFor(cols, rows, showStats)
	return w, h, true
}

// viewportFor converts a terminal size in cells into pixels. Each cell holds
// two vertically stacked pixels.
func viewportFor(cols, rows int, showStats bool) (int, int) {
	avail := rows - chromeRows
	if showStats {
		avail -= statsRows
	}
	return max(cols, 0), max(avail, 0) * 2
}

type model struct {
	mgr  *Manager
	help help.Model
	cols int
	rows int
	err  error
}

func newModel(mgr *Manager) model {
	return model{mgr: mgr, help: help.New()}
}

// RunInteractive hosts the manager in a bubbletea program until quit or ctx
// is cancelled.
func (m *Manager) RunInteractive(ctx context.Context) error {
	if !m.state.Mode.Interactive() {
		return ErrNotInteractive
	}
	p := tea.NewProgram(newModel(m), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	m.state.Mode = Terminated
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m model) Init() tea.Cmd { return nextFrame }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		ev := EventForKey(msg)
		if ev == nil {
			return m, nil
		}
		m.mgr.Handle(ev)
		if _, ok := ev.(ToggleStats); ok && m.cols > 0 {
			m.mgr.Handle(m.resize())
		}
		if m.mgr.State().Mode == Terminated {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.mgr.Handle(m.resize())
		return m, nil

	case frameMsg:
		if m.mgr.State().Mode == Terminated {
			return m, nil
		}
		if _, err := m.mgr.RenderFrame(); err != nil {
			m.err = err
			m.mgr.Handle(Quit{})
			return m, tea.Quit
		}
		return m, nextFrame
	}
	return m, nil
}

func (m model) resize() Resize {
	w, h := viewportFor(m.cols, m.rows, m.mgr.State().ShowStats)
	return Resize{Width: w, Height: h}
}

func (m model) View() string {
	if m.mgr.State().Mode == Terminated {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	b.WriteString(halfBlocks(m.mgr.Surface(), m.mgr.Visible()))
	if m.mgr.State().ShowStats {
		b.WriteString(m.stats())
		b.WriteByte('\n')
	}
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}

func (m model) header() string {
	st := m.mgr.State()
	mode := runStyle.Render("RUNNING")
	if st.Mode == InteractivePaused {
		mode = pauseStyle.Render("PAUSED")
	}
	fps := 0.0
	if ft := m.mgr.FrameTime(); ft > 0 {
		fps = 1 / ft.Seconds()
	}
	name := ""
	if r := m.mgr.ctrl.Renderer(); r != nil {
		name = r.Name()
	}
	return fmt.Sprintf("%s %s  %s",
		titleStyle.Render("circlebench"),
		mode,
		dimStyle.Render(fmt.Sprintf("%s  frame %d  %.1f fps", name, m.mgr.Frames(), fps)))
}

func (m model) stats() string {
	t := m.mgr.LastTiming()
	lines := fmt.Sprintf("Clear:    %.3f ms\nAdvance:  %.3f ms\nRender:   %.3f ms",
		frame.Millis(t.Clear), frame.Millis(t.Advance), frame.Millis(t.Render))
	out := statsStyle.Render(lines)

	hist := m.mgr.History()
	if len(hist) < 2 {
		return out + strings.Repeat("\n", statsRows-3)
	}
	width := max(m.cols-12, 10)
	graph := asciigraph.Plot(hist,
		asciigraph.Height(graphRows),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption("frame ms"))
	return out + "\n" + graphStyle.Render(graph)
}

// halfBlocks draws the visible region with one "▀" per two pixel rows.
// Row 0 of the frame buffer is the bottom of the picture.
func halfBlocks(img *image.RGBA, vis image.Rectangle) string {
	if img == nil || vis.Empty() {
		return ""
	}
	w, h := vis.Dx(), vis.Dy()
	var b strings.Builder
	for top := 0; top < h; top += 2 {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, h-1-top)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", img.Pix[o], img.Pix[o+1], img.Pix[o+2])
			if top+1 < h {
				o = img.PixOffset(x, h-2-top)
				fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", img.Pix[o], img.Pix[o+1], img.Pix[o+2])
			} else {
				b.WriteString("\x1b[49m")
			}
			b.WriteString("▀")
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}
