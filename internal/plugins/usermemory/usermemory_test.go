package usermemory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatpilot/toolview/internal/render"
)

func bundleFor(t *testing.T, toolName string) render.Bundle {
	t.Helper()
	for _, bundle := range Bundles() {
		if bundle.ToolName == toolName {
			return bundle
		}
	}
	t.Fatalf("no bundle for %s", toolName)
	return render.Bundle{}
}

func TestRememberSavedNewFact(t *testing.T) {
	bundle := bundleFor(t, "memory.remember")
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"status": "saved",
		"memory": map[string]any{
			"fact": "User likes tea",
			"key":  "drink_pref",
			"tags": []any{"pref"},
		},
		"total_memories": float64(3),
	}})

	lines := strings.Split(got, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "**Memory saved**", lines[0])
	assert.Contains(t, got, "User likes tea")
	assert.Contains(t, got, "drink_pref")
	assert.Contains(t, got, "pref")
	assert.Contains(t, got, "3")
}

func TestRememberUpdatedHeadline(t *testing.T) {
	bundle := bundleFor(t, "memory.remember")
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"status": "updated",
		"memory": map[string]any{"fact": "User moved to Berlin"},
	}})
	assert.True(t, strings.HasPrefix(got, "**Memory updated**"))
	assert.NotContains(t, got, "Tags:")
	assert.NotContains(t, got, "Total memories:")
}

func TestRememberOutputAbsent(t *testing.T) {
	bundle := bundleFor(t, "memory.remember")
	assert.Equal(t, "", bundle.FormatOutput(render.Context{}))
	assert.Equal(t, "", bundle.FormatOutput(render.Context{Output: "done"}))
	assert.Equal(t, "", bundle.FormatOutput(render.Context{Output: float64(1)}))
}

func TestRememberError(t *testing.T) {
	bundle := bundleFor(t, "memory.remember")
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"error":  "storage unavailable",
		"memory": map[string]any{"fact": "ignored"},
	}})
	assert.Equal(t, "**Memory error:** storage unavailable", got)
}

func TestRememberPreviewAndStart(t *testing.T) {
	bundle := bundleFor(t, "memory.remember")
	ctx := render.Context{Args: map[string]any{"fact": "User   likes\ttea"}}
	assert.Equal(t, "User likes tea", bundle.QueryPreview(ctx))
	assert.Equal(t, "*Saving to memory:* User likes tea", bundle.FormatStart(ctx))

	empty := render.Context{}
	assert.Equal(t, "Memory", bundle.QueryPreview(empty))
	assert.Equal(t, "*Saving to memory…*", bundle.FormatStart(empty))

	echoed := render.Context{Output: map[string]any{
		"memory": map[string]any{"fact": "echoed fact"},
	}}
	assert.Equal(t, "echoed fact", bundle.QueryPreview(echoed))
}

func TestRecallEmptyResult(t *testing.T) {
	bundle := bundleFor(t, "memory.recall")
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"memories": []any{},
	}})
	assert.Equal(t, "**Memory recall:** no results found", got)
	assert.NotContains(t, got, "1.")
}

func TestRecallNumberedListWithOverflow(t *testing.T) {
	entries := make([]any, 14)
	for i := range entries {
		entries[i] = map[string]any{
			"fact": "fact number " + string(rune('a'+i)),
			"key":  "k",
			"tags": []any{"t1", "t2"},
		}
	}
	bundle := bundleFor(t, "memory.recall")
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"memories": entries,
		"count":    float64(14),
	}})

	assert.True(t, strings.HasPrefix(got, "**Found in memory**"))
	assert.Contains(t, got, "1. fact number a (key=k • tags=t1,t2)")
	assert.Contains(t, got, "12. fact number l (key=k • tags=t1,t2)")
	assert.NotContains(t, got, "13.")
	assert.Contains(t, got, "+2 more")
}

func TestRecallEntryWithoutMeta(t *testing.T) {
	bundle := bundleFor(t, "memory.recall")
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"memories": []any{
			map[string]any{"fact": "bare fact"},
			"not an object",
			map[string]any{"key": "no-fact"},
		},
	}})
	assert.Contains(t, got, "1. bare fact")
	assert.NotContains(t, got, "2.")
	assert.NotContains(t, got, "(")
}

func TestForgetNoMatches(t *testing.T) {
	bundle := bundleFor(t, "memory.forget")
	for _, output := range []map[string]any{
		{"removed_count": float64(0)},
		{"removed_count": float64(-4)},
		{},
	} {
		got := bundle.FormatOutput(render.Context{Output: output})
		assert.Equal(t, "**Memory forget:** no matches", got)
	}
}

func TestForgetCounts(t *testing.T) {
	bundle := bundleFor(t, "memory.forget")
	removed := make([]any, 10)
	for i := range removed {
		removed[i] = map[string]any{"fact": "gone " + string(rune('a'+i))}
	}
	got := bundle.FormatOutput(render.Context{Output: map[string]any{
		"removed_count":   float64(10),
		"remaining_count": float64(-2),
		"removed":         removed,
	}})

	assert.True(t, strings.HasPrefix(got, "**Removed from memory**"))
	assert.Contains(t, got, "Removed: 10")
	assert.Contains(t, got, "Remaining: 0")
	assert.Contains(t, got, "8. gone h")
	assert.NotContains(t, got, "9. gone")
	assert.Contains(t, got, "+2 more")
}

func TestRegisterAllFamilies(t *testing.T) {
	reg := render.NewRegistry()
	require.True(t, Register(reg))
	for _, name := range []string{
		"memory.remember", "memory.recall", "memory.forget",
		"user_memory.remember", "user_memory.recall", "user_memory.forget",
	} {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, name)
	}
	assert.False(t, Register(nil))
}
