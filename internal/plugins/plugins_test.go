package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatpilot/toolview/internal/render"
)

func TestRegisterAll(t *testing.T) {
	reg := render.NewRegistry()
	require.True(t, RegisterAll(reg))

	expected := []string{
		"chat.mood",
		"chat.set_mood",
		"duckduckgo.search",
		"memory.forget",
		"memory.recall",
		"memory.remember",
		"system.time",
		"time.now",
		"user_memory.forget",
		"user_memory.recall",
		"user_memory.remember",
		"web.search.duckduckgo",
		"web.visit",
		"web.visit.website",
	}
	assert.Equal(t, expected, reg.Names())
}

func TestRegisterAllNilHost(t *testing.T) {
	assert.False(t, RegisterAll(nil))
}

func TestFamiliesCatalog(t *testing.T) {
	families := Families()
	require.Len(t, families, 5)
	seen := map[string]bool{}
	for _, family := range families {
		assert.NotEmpty(t, family.Description)
		assert.False(t, seen[family.PluginID], "duplicate plugin id %s", family.PluginID)
		seen[family.PluginID] = true
		for _, bundle := range family.Bundles() {
			assert.Equal(t, family.PluginID, bundle.PluginID)
			assert.NotEmpty(t, bundle.ToolName)
			assert.NotNil(t, bundle.QueryPreview)
			assert.NotNil(t, bundle.FormatStart)
			assert.NotNil(t, bundle.FormatOutput)
		}
	}
}
