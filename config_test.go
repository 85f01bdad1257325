package mu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DefaultsArePrimed(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultHeapSize, cfg.GetInt("heap.size"))
	assert.True(t, cfg.GetBool("heap.gc_primitive"))
	assert.True(t, cfg.GetBool("printer.escape_default"))
	assert.True(t, cfg.GetBool("repl.catch_conditions"))
}

func TestConfig_SetGetRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.SetString("repl.prompt", "mu> ")
	assert.Equal(t, "mu> ", cfg.GetString("repl.prompt"))

	cfg.SetInt("heap.size", 4096)
	assert.Equal(t, 4096, cfg.GetInt("heap.size"))
}

func TestConfig_GetWrongTypePanics(t *testing.T) {
	cfg := NewConfig()
	assert.Panics(t, func() { cfg.GetString("heap.size") })
}

func TestConfig_GetMissingPanics(t *testing.T) {
	cfg := NewConfig()
	assert.Panics(t, func() { cfg.GetBool("does.not.exist") })
}

func TestConfig_ReassignDifferentTypePanics(t *testing.T) {
	cfg := NewConfig()
	assert.Panics(t, func() { cfg.SetString("heap.size", "oops") })
}
