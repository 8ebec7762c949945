package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "RD", Initials("RD Services"))
	assert.Equal(t, "MA", Initials("marketing Automation"))
	assert.Equal(t, "X", Initials("x"))
	assert.Equal(t, "ÉC", Initials("école"))
	assert.Equal(t, "?", Initials("   "))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#8B5CF6", ColorFor(0))
	assert.Equal(t, "#3B82F6", ColorFor(1))
	assert.Equal(t, ColorFor(1), ColorFor(7))
}

func TestProjectCover(t *testing.T) {
	svg, err := ProjectCover(3, "Launch <beta>")
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, `id="grad3"`)
	assert.Contains(t, out, `stop-color="#F59E0B"`)
	assert.Contains(t, out, ">LA<")
	assert.Contains(t, out, "Launch &lt;beta&gt;")
	assert.NotContains(t, out, "<beta>")
}
