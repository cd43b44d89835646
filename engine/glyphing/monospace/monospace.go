package monospace

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/image/font/sfnt"
)

// Name is the name of the fallback shaper.
const Name = "fallback"

var setupClasses sync.Once

// Shaper is the fallback shaper.
type Shaper struct {
	name    string
	context *uax11.Context
}

var _ glyphing.Shaper = (*Shaper)(nil)

// New creates a fallback shaper for Latin context.
func New() *Shaper {
	return NewWithContext(nil)
}

// NewWithContext creates a fallback shaper. context decides the width of
// ambiguous code-points; if it is nil, uax11.LatinContext is used.
func NewWithContext(context *uax11.Context) *Shaper {
	if context == nil {
		context = uax11.LatinContext
	}
	setupClasses.Do(grapheme.SetupGraphemeClasses)
	return &Shaper{name: Name, context: context}
}

// Name returns "fallback".
func (s *Shaper) Name() string {
	return s.name
}

type faceData struct {
	sfnt *sfnt.Font // nil for the empty face
	upem int
}

// NewFaceData accepts every face.
func (s *Shaper) NewFaceData(face *glyphing.Face) (any, error) {
	fd := &faceData{upem: face.UnitsPerEm()}
	if f := face.Font(); f != nil {
		fd.sfnt = f.SFNT
	}
	return fd, nil
}

// NewFontData does nothing.
func (s *Shaper) NewFontData(font *glyphing.Font) (any, error) {
	return nil, nil
}

// NewPlanData remembers whether glyphs have to be output in reverse order.
func (s *Shaper) NewPlanData(face *glyphing.Face, props glyphing.SegmentProperties,
	features []glyphing.Feature, coords []int) (any, error) {
	//
	return props.Direction.IsBackward(), nil
}

// Shape outputs one glyph per grapheme cluster. Glyph indices are looked
// up for the first code-point of a cluster; clusters without a glyph in the
// face are mapped to glyph 0.
func (s *Shaper) Shape(plan glyphing.ShapePlan, font *glyphing.Font, buf *glyphing.Buffer,
	features []glyphing.Feature) bool {
	//
	data, ok := font.Face().ShaperData(s)
	if !ok {
		return false
	}
	fd := data.(*faceData)
	vertical := plan.Properties().Direction.IsVertical()
	runes := buf.Runes()
	breaker := grapheme.NewBreaker(1)
	segmenter := segment.NewSegmenter(breaker)
	segmenter.Init(strings.NewReader(string(runes)))
	var sfntBuf sfnt.Buffer
	glyphs := make([]glyphing.ShapedGlyph, 0, len(runes))
	pos := 0
	for segmenter.Next() {
		grphm := segmenter.Bytes()
		codepoint, _ := utf8.DecodeRune(grphm)
		w := uax11.Width(grphm, s.context)
		g := glyphing.ShapedGlyph{
			Cluster:   pos,
			CodePoint: codepoint,
		}
		if vertical {
			g.YAdvance = int32(fd.upem)
		} else {
			g.XAdvance = int32(w * fd.upem / 2)
		}
		if fd.sfnt != nil {
			if gid, err := fd.sfnt.GlyphIndex(&sfntBuf, codepoint); err == nil {
				g.GID = uint32(gid)
			}
		}
		glyphs = append(glyphs, g)
		pos += utf8.RuneCount(grphm)
	}
	if backward, _ := plan.ShaperData().(bool); backward {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	tracer().Debugf("fallback shaped %d code-points into %d glyphs", len(runes), len(glyphs))
	buf.SetGlyphs(glyphs)
	return true
}
