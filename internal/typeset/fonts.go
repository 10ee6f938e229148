// Package typeset measures and draws resume blocks with real font metrics
// through github.com/tdewolff/canvas.
package typeset

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"resumePress/internal/resume"
)

var ink = color.RGBA{R: 30, G: 30, B: 30, A: 255}

// fontSet lazily builds one canvas family per resume font family. The Go
// fonts stand in for every family; metric differences are absorbed by the
// browser's own reflow at export time.
type fontSet struct {
	mu       sync.Mutex
	families map[resume.FontFamily]*canvas.FontFamily
}

var sharedFonts = &fontSet{families: map[resume.FontFamily]*canvas.FontFamily{}}

func (s *fontSet) family(name resume.FontFamily) (*canvas.FontFamily, error) {
	if name == "" {
		name = resume.FontArial
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.families[name]; ok {
		return f, nil
	}
	f := canvas.NewFontFamily(string(name))
	faces := []struct {
		data  []byte
		style canvas.FontStyle
	}{
		{goregular.TTF, canvas.FontRegular},
		{gobold.TTF, canvas.FontBold},
		{goitalic.TTF, canvas.FontItalic},
	}
	for _, face := range faces {
		if err := f.LoadFont(face.data, 0, face.style); err != nil {
			return nil, fmt.Errorf("load %s font: %w", name, err)
		}
	}
	s.families[name] = f
	return f, nil
}

func (s *fontSet) face(name resume.FontFamily, sizePt float64, style canvas.FontStyle) (*canvas.FontFace, error) {
	f, err := s.family(name)
	if err != nil {
		return nil, err
	}
	return f.Face(sizePt, ink, style, canvas.FontNormal), nil
}
