package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/commute/invoice"
)

func TestErrorRendererSourceContext(t *testing.T) {
	source := []byte("Reisoverzicht\n\n24-06-2025  NS  Spits  Hilversum Weesp  2  € 1,2,3\nTotaal")
	err := &invoice.ParseError{
		Pos:   invoice.Position{Filename: "juni.txt", Line: 3, Column: 45},
		Field: "price",
		Value: "1,2,3",
	}

	out := NewErrorRenderer(source).Render(err)
	lines := strings.Split(out, "\n")

	assert.Equal(t, `juni.txt:3:45: invalid price "1,2,3"`, lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "   Reisoverzicht", lines[2])
	assert.Equal(t, "   24-06-2025  NS  Spits  Hilversum Weesp  2  € 1,2,3", lines[4])
	assert.Equal(t, strings.Repeat(" ", 3+44)+"^", lines[5])
	assert.Equal(t, "   Totaal", lines[6])
}

func TestErrorRendererPlainError(t *testing.T) {
	out := NewErrorRenderer(nil).Render(errors.New("boom"))
	assert.Equal(t, "boom", out)
}

func TestCommandError(t *testing.T) {
	err := NewCommandError(2)
	assert.Equal(t, 2, err.ExitCode())
	assert.Equal(t, "command failed", err.Error())
}
