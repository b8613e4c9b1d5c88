package textscale

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// lineHeightFactor is the line box height as a multiple of the font size.
const lineHeightFactor = 1.2

// FontCache hands out text faces per pixel size from one font source. The
// source is parsed on first use.
type FontCache struct {
	data   []byte
	source *text.GoTextFaceSource
	err    error
	faces  map[int]*text.GoTextFace
}

// NewFontCache creates a cache over TTF/OTF data. nil selects the embedded Go
// Regular font.
func NewFontCache(ttf []byte) *FontCache {
	if ttf == nil {
		ttf = goregular.TTF
	}
	return &FontCache{data: ttf, faces: make(map[int]*text.GoTextFace)}
}

func (c *FontCache) load() error {
	if c.source != nil || c.err != nil {
		return c.err
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(c.data))
	if err != nil {
		c.err = fmt.Errorf("textscale: failed to parse font: %w", err)
		return c.err
	}
	c.source = src
	return nil
}

// Face returns the face for a pixel size, rounded to the nearest integer so
// repeated scaling passes reuse faces.
func (c *FontCache) Face(size float64) (*text.GoTextFace, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	px := int(math.Round(size))
	if px < 1 {
		px = 1
	}
	if f, ok := c.faces[px]; ok {
		return f, nil
	}
	f := &text.GoTextFace{Source: c.source, Size: float64(px)}
	c.faces[px] = f
	return f, nil
}

// Measure returns the laid-out size of s at the given font size.
func (c *FontCache) Measure(s string, size float64) (w, h float64) {
	f, err := c.Face(size)
	if err != nil {
		return 0, 0
	}
	return text.Measure(s, f, size*lineHeightFactor)
}
