package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetrion/internal/storage"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	choice MenuChoice
	title  string
}

var menuItems = []menuItem{
	{ChoicePlay, "Play"},
	{ChoiceScores, "High Scores"},
	{ChoiceQuit, "Quit"},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor   int
	width    int
	height   int
	player   string
	variant  string
	best     int
	selected MenuChoice
	embedded bool
}

// NewMenuModel creates a new menu model. The best line count of the
// variant is read from store when one is given.
func NewMenuModel(store *storage.Store, player, variant string, width, height int) MenuModel {
	m := MenuModel{
		width:   width,
		height:  height,
		player:  player,
		variant: variant,
	}
	if store != nil {
		if best, err := store.BestLines(variant); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		return m.choose(ChoiceQuit)

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.choose(menuItems[m.cursor].choice)

	case MenuActionScoreboard:
		return m.choose(ChoiceScores)
	}

	return m, nil
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.selected = c
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.selected == ChoiceQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T E T R I O N"), m.width))
	b.WriteString("\n\n")

	sub := fmt.Sprintf("variant %s", m.variant)
	if m.player != "" {
		sub = fmt.Sprintf("%s • %s", m.player, sub)
	}
	if m.best > 0 {
		sub += fmt.Sprintf(" • best %d lines", m.best)
	}
	b.WriteString(centerText(sub, m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu runs the menu as its own program and returns the choice.
func RunMenu(store *storage.Store, player, variant string, width, height int) (MenuChoice, error) {
	p := tea.NewProgram(NewMenuModel(store, player, variant, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return ChoiceQuit, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.Selected() == ChoiceNone {
		return ChoiceQuit, nil
	}
	return m.Selected(), nil
}
