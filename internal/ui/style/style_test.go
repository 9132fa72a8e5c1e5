package style_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/pipdeps/internal/ui/style"
)

func TestStyles_PlainOnNonTerminal(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})

	assert.Equal(t, "Total 3 packages", style.Heading(r).Render("Total 3 packages"))
	assert.Equal(t, "Name:", style.Label(r).Render("Name:"))
	assert.Equal(t, style.Check+" done", style.Success(r).Render(style.Check+" done"))
}
