// Package preview decodes logo images into small terminal thumbnails.
//
// A Preview is a scoped resource: it is acquired when a logo is selected and
// must be released when the logo is replaced or the form is torn down. The
// Tracker counts live previews so leaks are observable.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// Default thumbnail size in terminal cells. Each cell shows two pixel rows.
const (
	DefaultCols = 16
	DefaultRows = 8
)

// Tracker hands out previews and counts the ones not yet released.
// It is not safe for concurrent use.
type Tracker struct {
	live int
}

// Live returns the number of acquired, unreleased previews.
func (t *Tracker) Live() int {
	if t == nil {
		return 0
	}
	return t.live
}

// Acquire decodes data and builds a thumbnail fitting cols x rows cells.
// Undecodable data still yields a Preview; Err reports why no thumbnail
// exists.
func (t *Tracker) Acquire(name string, data []byte, cols, rows int) *Preview {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	p := &Preview{tracker: t}
	if t != nil {
		t.live++
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		p.err = fmt.Errorf("decode logo %q: %w", name, err)
		return p
	}
	b := img.Bounds()
	p.width, p.height = b.Dx(), b.Dy()
	p.thumb = imaging.Fit(img, cols, rows*2, imaging.Lanczos)
	return p
}

// Preview is a decoded logo thumbnail.
type Preview struct {
	width    int
	height   int
	thumb    *image.NRGBA
	err      error
	tracker  *Tracker
	released bool
}

// Release frees the thumbnail. Calling it more than once is harmless.
func (p *Preview) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.thumb = nil
	if p.tracker != nil && p.tracker.live > 0 {
		p.tracker.live--
	}
}

func (p *Preview) Released() bool { return p == nil || p.released }
func (p *Preview) Err() error     { return p.err }

// Dimensions returns the source image size in pixels, zero if undecodable.
func (p *Preview) Dimensions() (int, int) {
	if p == nil {
		return 0, 0
	}
	return p.width, p.height
}

// Render draws the thumbnail with upper half blocks, top pixel as foreground
// and bottom pixel as background. Transparent pixels are composited onto
// white.
func (p *Preview) Render() string {
	if p == nil || p.thumb == nil {
		return ""
	}
	b := p.thumb.Bounds()
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexOnWhite(p.thumb.NRGBAAt(x, y))
			bottom := "#ffffff"
			if y+1 < b.Max.Y {
				bottom = hexOnWhite(p.thumb.NRGBAAt(x, y+1))
			}
			out.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y+2 < b.Max.Y {
			out.WriteString("\n")
		}
	}
	return out.String()
}

func hexOnWhite(c color.NRGBA) string {
	blend := func(v uint8) uint8 {
		return uint8((uint32(v)*uint32(c.A) + 255*(255-uint32(c.A))) / 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(c.R), blend(c.G), blend(c.B))
}
