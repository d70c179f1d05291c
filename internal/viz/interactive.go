package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/neuralgrid/internal/config"
)

var presetInfo = map[string]string{
	"default": "the standard grid",
	"dense":   "four hundred nodes, tight mesh",
	"calm":    "slow drift, short links",
	"wide":    "ultrawide surface, ocean theme",
	"storm":   "fast nodes, strong pointer",
}

const (
	stateMenu = iota
	stateSim
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff41")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuItem   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// PresetResolver builds the config for a preset chosen in the picker, with
// whatever overrides the caller wants layered on top.
type PresetResolver func(name string) (*config.Config, error)

// picker lets the user choose a preset and theme before going live.
type picker struct {
	state, cursor int
	presets       []string
	theme         int
	resolve       PresetResolver
	err           error
	width, height int
	live          Model
}

// NewPicker starts on base's theme. A nil resolve uses the bare preset with
// base's seed.
func NewPicker(base *config.Config, resolve PresetResolver) *picker {
	if resolve == nil {
		resolve = func(name string) (*config.Config, error) {
			cfg := config.GetPreset(name)
			if cfg == nil {
				return nil, fmt.Errorf("%w: %s", config.ErrUnknownPreset, name)
			}
			cfg.Seed = base.Seed
			return cfg, nil
		}
	}
	m := &picker{
		state:   stateMenu,
		presets: config.ListPresets(),
		resolve: resolve,
	}
	for i, t := range Themes {
		if t.Name == base.Theme {
			m.theme = i
		}
	}
	return m
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.menuKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "enter", " ":
		return m, m.start()
	}
	return m, nil
}

func (m *picker) start() tea.Cmd {
	cfg, err := m.resolve(m.presets[m.cursor])
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	cfg.Theme = Themes[m.theme].Name
	m.live = NewModel(cfg)
	if m.width > 0 {
		m.live.resize(m.width, m.height)
	}
	m.state = stateSim
	return m.live.Init()
}

func (m picker) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("NEURAL GRID") + "\n    " + menuSub.Render("particle field simulator") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), NeonGlow.Render(fmt.Sprintf("%-10s", name)), desc))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuItem.Render(fmt.Sprintf("  %-10s", name)), menuDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuSub.Render("theme: ") + GradientText(Themes[m.theme].Name, Themes[m.theme].Primary, Themes[m.theme].Accent) + "\n")
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSub.Render(" navigate  ") + menuKey.Render("t") + menuSub.Render(" theme  ") + menuKey.Render("enter") + menuSub.Render(" start  ") + menuKey.Render("q") + menuSub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive opens the preset picker and then the live view.
func RunInteractive(base *config.Config, resolve PresetResolver) error {
	_, err := tea.NewProgram(NewPicker(base, resolve), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
