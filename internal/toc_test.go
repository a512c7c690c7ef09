package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTOC_Collisions(t *testing.T) {
	toc := TOC{
		{Name: "fonts_a", Path: "fonts/a.ttf"},
		{Name: "icons_b", Path: "icons/b.png"},
	}
	assert.Empty(t, toc.Collisions())
	assert.Equal(t, []string{"fonts_a", "icons_b"}, toc.Names())
}

func TestTOC_Collisions_sameName(t *testing.T) {
	toc := TOC{
		{Name: "x", Path: "a/x.bin"},
		{Name: "x", Path: "b/x.bin"},
	}
	collisions := toc.Collisions()
	// array and size constant both collide
	assert.Len(t, collisions, 2)
	assert.Equal(t, "x", collisions[0].Symbol)
	assert.Equal(t, "a/x.bin", collisions[0].First.Path)
	assert.Equal(t, "b/x.bin", collisions[0].Second.Path)
	assert.Equal(t, "x_size", collisions[1].Symbol)
}

func TestTOC_Collisions_sizeConstant(t *testing.T) {
	toc := TOC{
		{Name: "logo", Path: "logo.png"},
		{Name: "logo_size", Path: "logo-size.png"},
	}
	collisions := toc.Collisions()
	assert.Len(t, collisions, 1)
	assert.Equal(t, "logo_size", collisions[0].Symbol)
	assert.Equal(t, "logo.png", collisions[0].First.Path)
	assert.Equal(t, "logo-size.png", collisions[0].Second.Path)
}
