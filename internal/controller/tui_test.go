package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_DisplayExpansions_PrintsWithoutTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	require.NoError(t, ui.DisplayExpansions(context.Background(), sampleResults()))

	assert.Contains(t, out.String(), "get_mwt")
	assert.Equal(t, renderExpansionTable(sampleResults()), out.String())
}

func TestTUI_DisplayExpanded(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	require.NoError(t, ui.DisplayExpanded(context.Background(), sampleResults()))

	assert.True(t, strings.HasPrefix(out.String(), "// file: src/lib.rs\n"))
	assert.Contains(t, out.String(), "\n// file: src/plain.rs\nfn plain() {}\n")
}

func TestListingModel_Pagination(t *testing.T) {
	content := strings.Repeat("row\n", 50)

	model := newListingModel(content)
	assert.False(t, model.needsPagination(), "unknown terminal size never pages")

	model.setSize(80, 100)
	assert.False(t, model.needsPagination())

	model.setSize(80, 20)
	assert.True(t, model.needsPagination())
	assert.Equal(t, 20-reservedLines, model.viewport.Height)
}

func TestListingModel_Update(t *testing.T) {
	model := newListingModel(strings.Repeat("row\n", 50))

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Nil(t, cmd)

	lm, ok := updated.(listingModel)
	require.True(t, ok)
	assert.Equal(t, 40, lm.width)
	assert.Equal(t, 10, lm.height)

	_, cmd = lm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	updated, _ = lm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	lm, ok = updated.(listingModel)
	require.True(t, ok)
	assert.True(t, lm.viewport.AtBottom())
	assert.Contains(t, lm.View(), "q: quit")
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
