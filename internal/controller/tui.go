package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/phi-fell/mwt/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayExpanded prints the expanded files. Source is never paged so it can
// be piped.
func (p *TUI) DisplayExpanded(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeExpanded(p.output, results)
}

// DisplayExpansions shows the expansion table, paged when it does not fit
// the terminal.
func (p *TUI) DisplayExpansions(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newListingModel(renderExpansionTable(results))

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.setSize(width, height)
		}
	}

	// If the table is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.plainView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayWatchEvent prints a styled one-line summary of a watcher run.
func (p *TUI) DisplayWatchEvent(ctx context.Context, result m.FileResult, err error) {
	if ctx.Err() != nil {
		return
	}

	path := displayPath(result)

	switch {
	case err != nil:
		_, _ = fmt.Fprintln(p.output, errorStyle.Render("✗ "+err.Error()))
	case result.Changed():
		_, _ = fmt.Fprintf(p.output, "%s %s %s\n",
			titleStyle.Render("✓"), path, mutedStyle.Render(fmt.Sprintf("(%d functions)", len(result.Expansions))))
	default:
		_, _ = fmt.Fprintln(p.output, mutedStyle.Render("· "+path+" unchanged"))
	}
}

// reservedLines covers the header and the footer around the viewport.
const reservedLines = 4

// listingModel pages a pre-rendered table.
type listingModel struct {
	viewport viewport.Model
	content  string
	height   int
	width    int
}

func newListingModel(content string) listingModel {
	vp := viewport.New(80, 20)
	vp.SetContent(content)

	return listingModel{
		viewport: vp,
		content:  content,
	}
}

func (lm *listingModel) setSize(width, height int) {
	lm.width = width
	lm.height = height
	lm.viewport.Width = width

	lm.viewport.Height = height - reservedLines
	if lm.viewport.Height < 1 {
		lm.viewport.Height = 1
	}
}

// needsPagination returns true if the table is too large to fit on screen.
func (lm listingModel) needsPagination() bool {
	if lm.height == 0 {
		return false
	}

	return strings.Count(lm.content, "\n") > lm.height-reservedLines
}

func (lm listingModel) Init() tea.Cmd {
	return nil
}

func (lm listingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		lm.setSize(msg.Width, msg.Height)

		return lm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return lm, tea.Quit
		case "g", "home":
			lm.viewport.GotoTop()

			return lm, nil
		case "G", "end":
			lm.viewport.GotoBottom()

			return lm, nil
		}
	}

	var cmd tea.Cmd
	lm.viewport, cmd = lm.viewport.Update(msg)

	return lm, cmd
}

func (lm listingModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mwt - marked functions"))
	b.WriteString("\n\n")
	b.WriteString(lm.viewport.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %3.f%% | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		lm.viewport.ScrollPercent()*100)))

	return b.String()
}

func (lm listingModel) plainView() string {
	return lm.content
}
