package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "PRICE"},
		[][]string{
			{"Nutella Crepe", "$65.00"},
			{"Lemonade", "$30.00"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Nutella Crepe")
	assert.Contains(t, lines[2], "$30.00")
}

func TestRenderTableRaggedRows(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME", "STOCK"},
		[][]string{
			{"i1"},
			{"i2", "Flour", "12", "extra column dropped"},
		},
	)

	assert.NotContains(t, out, "extra column dropped")
	assert.Contains(t, out, "Flour")
}

func TestRenderTableNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
