package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
)

// Controller is the part of the carousel controller the model drives.
type Controller interface {
	Next() error
	Previous() error
	Current() (domain.CarouselItem, bool)
	State() domain.CarouselState
	Config() domain.CarouselConfig
	Appear()
	SetLifecycle(phase domain.LifecyclePhase)
	Close() error
}

// keyMap defines keybindings for the carousel.
type keyMap struct {
	Previous key.Binding
	Next     key.Binding
	Pause    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Previous: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	activeDot     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("●")
	inactiveDot   = lipgloss.NewStyle().Faint(true).Render("○")
)

// Configured sizes are in points; the terminal lays out in cells.
const (
	columnPoints = 10
	rowPoints    = 30
	defaultWidth = 60
)

// Model is a bubbletea model showing one carousel page as a bordered card.
//
// Space stands in for the application going to the background: it pauses
// auto-advance through the lifecycle, so a pending boundary correction still
// completes.
type Model struct {
	ctrl     Controller
	total    int
	keyMap   keyMap
	help     help.Model
	width    int
	paused   bool
	quitting bool
	lastErr  error
}

// NewModel creates a model over ctrl. total is the number of caller items.
func NewModel(ctrl Controller, total int) Model {
	return Model{
		ctrl:   ctrl,
		total:  total,
		keyMap: defaultKeyMap(),
		help:   help.New(),
		width:  defaultWidth,
	}
}

// Paused reports whether the user paused auto-advance.
func (m Model) Paused() bool {
	return m.paused
}

// Init implements tea.Model. Starting the program makes the carousel appear.
func (m Model) Init() tea.Cmd {
	m.ctrl.Appear()
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		msg()

	case tea.KeyMsg:
		m.lastErr = nil
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.quitting = true
			if err := m.ctrl.Close(); err != nil && !errors.Is(err, domain.ErrControllerClosed) {
				m.lastErr = err
			}
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Previous):
			m.lastErr = ignoreBounds(m.ctrl.Previous())

		case key.Matches(msg, m.keyMap.Next):
			m.lastErr = ignoreBounds(m.ctrl.Next())

		case key.Matches(msg, m.keyMap.Pause):
			m.paused = !m.paused
			m.ctrl.SetLifecycle(m.phase(true))
		}

	case tea.FocusMsg:
		m.ctrl.SetLifecycle(m.phase(true))

	case tea.BlurMsg:
		m.ctrl.SetLifecycle(m.phase(false))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}

	return m, nil
}

// phase maps the pause toggle and terminal focus to a lifecycle phase.
func (m Model) phase(focused bool) domain.LifecyclePhase {
	switch {
	case m.paused:
		return domain.PhaseBackground
	case !focused:
		return domain.PhaseInactive
	default:
		return domain.PhaseActive
	}
}

func ignoreBounds(err error) error {
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		return nil
	}
	return err
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cfg := m.ctrl.Config()
	state := m.ctrl.State()

	var b strings.Builder
	b.WriteString(m.cardView(cfg))
	b.WriteString("\n")
	b.WriteString(m.dotsView(state.RealIndex))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusView(cfg, state)))
	b.WriteString("\n")
	if m.lastErr != nil {
		b.WriteString(fmt.Sprintf("error: %v\n", m.lastErr))
	}
	b.WriteString(m.help.View(m.keyMap))

	return b.String()
}

// cardView renders the current item inside a rounded border.
func (m Model) cardView(cfg domain.CarouselConfig) string {
	padding := int(cfg.HorizontalPadding / columnPoints)
	height := max(int(cfg.PageHeight/rowPoints), 3)
	width := max(m.width-2*padding-2, 10)

	card := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Margin(0, padding)
	if cfg.CornerRadius > 0 {
		card = card.Border(lipgloss.RoundedBorder())
	} else {
		card = card.Border(lipgloss.NormalBorder())
	}

	item, ok := m.ctrl.Current()
	if !ok {
		return card.Render(subtitleStyle.Render("nothing to show"))
	}

	content := titleStyle.Render(item.Title)
	if item.Subtitle != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, subtitleStyle.Render(item.Subtitle))
	}
	return card.Render(content)
}

// dotsView renders one dot per caller item with the shown one highlighted.
func (m Model) dotsView(current int) string {
	dots := make([]string, m.total)
	for i := range dots {
		if i == current {
			dots[i] = activeDot
		} else {
			dots[i] = inactiveDot
		}
	}
	return strings.Join(dots, " ")
}

func (m Model) statusView(cfg domain.CarouselConfig, state domain.CarouselState) string {
	position := fmt.Sprintf("%d/%d", state.RealIndex+1, m.total)
	switch {
	case !cfg.AutoAdvance:
		return position + " · manual"
	case m.paused:
		return position + " · paused"
	case state.TimerRunning:
		return fmt.Sprintf("%s · every %s", position, cfg.Interval)
	default:
		return position + " · waiting"
	}
}
