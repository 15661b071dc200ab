package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		assert.NotEmpty(t, cfg.APIBase)
		assert.Equal(t, 500, cfg.MaxCommentLen)
		assert.Positive(t, cfg.PageSize)
	})

	t.Run("api base override also moves the asset base", func(t *testing.T) {
		t.Setenv("QUILL_API_BASE", "http://localhost:4000")
		cfg := Load()
		assert.Equal(t, "http://localhost:4000", cfg.APIBase)
		assert.Equal(t, "http://localhost:4000", cfg.AssetBase)
	})

	t.Run("asset base overrides separately", func(t *testing.T) {
		t.Setenv("QUILL_API_BASE", "http://localhost:4000")
		t.Setenv("QUILL_ASSET_BASE", "http://cdn.local")
		cfg := Load()
		assert.Equal(t, "http://localhost:4000", cfg.APIBase)
		assert.Equal(t, "http://cdn.local", cfg.AssetBase)
	})

	t.Run("bad page size ignored", func(t *testing.T) {
		t.Setenv("QUILL_PAGE_SIZE", "many")
		assert.Equal(t, Default().PageSize, Load().PageSize)

		t.Setenv("QUILL_PAGE_SIZE", "-3")
		assert.Equal(t, Default().PageSize, Load().PageSize)

		t.Setenv("QUILL_PAGE_SIZE", "25")
		assert.Equal(t, 25, Load().PageSize)
	})
}
