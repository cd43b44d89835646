/*
Package harfbuzz implements a shaper on top of a Go port of HarfBuzz.

The shaper is registered under the name "harfbuzz". It handles every face
holding an OpenType or TrueType font.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shaping/core"
	"github.com/npillmayer/shaping/engine/glyphing"
	"golang.org/x/text/language"
)

// tracer traces with key 'shaping.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("shaping.glyphs")
}

// Name is the name of the HarfBuzz shaper.
const Name = "harfbuzz"

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB converts a feature setting to a HarfBuzz feature.
func Feature4HB(f glyphing.Feature) hb.Feature {
	return hb.Feature{
		Tag:   hbtt.Tag(f.Tag),
		Value: f.Value,
		Start: f.Start,
		End:   f.End,
	}
}

// Props4HB converts segment properties to HarfBuzz segment properties.
func Props4HB(props glyphing.SegmentProperties) hb.SegmentProperties {
	var hbprops hb.SegmentProperties
	if props.Language != language.Und {
		hbprops.Language = Lang4HB(props.Language)
	}
	var none language.Script
	if props.Script != none {
		hbprops.Script = Script4HB(props.Script)
	}
	hbprops.Direction = Direction4HB(props.Direction)
	return hbprops
}

// --- Shaper ----------------------------------------------------------------

// Shaper shapes text with HarfBuzz.
type Shaper struct {
	name string
}

var _ glyphing.Shaper = (*Shaper)(nil)

// New creates a HarfBuzz shaper.
func New() *Shaper {
	return &Shaper{name: Name}
}

// Name returns "harfbuzz".
func (s *Shaper) Name() string {
	return s.name
}

// NewFaceData parses the binary font data of face. Faces without font data
// are rejected.
func (s *Shaper) NewFaceData(face *glyphing.Face) (any, error) {
	if face.IsInert() || face.Font() == nil || len(face.Font().Binary) == 0 {
		return nil, core.Error(core.EMISSING, "harfbuzz needs a face with font data")
	}
	hbface, err := hbtt.Parse(bytes.NewReader(face.Font().Binary), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "harfbuzz cannot parse font %s", face.Font().Name())
	}
	tracer().Debugf("harfbuzz parsed font %s", face.Font().Name())
	return hbface, nil
}

// NewFontData does nothing; HarfBuzz fonts are created per shaping call.
func (s *Shaper) NewFontData(font *glyphing.Font) (any, error) {
	return nil, nil
}

// NewPlanData precomputes the HarfBuzz segment properties of a plan.
func (s *Shaper) NewPlanData(face *glyphing.Face, props glyphing.SegmentProperties,
	features []glyphing.Feature, coords []int) (any, error) {
	//
	hbprops := Props4HB(props)
	return &hbprops, nil
}

// Shape shapes the code-points of buf. Glyph positions are in font design units.
func (s *Shaper) Shape(plan glyphing.ShapePlan, font *glyphing.Font, buf *glyphing.Buffer,
	features []glyphing.Feature) bool {
	//
	data, ok := font.Face().ShaperData(s)
	if !ok {
		return false
	}
	hbprops, ok := plan.ShaperData().(*hb.SegmentProperties)
	if !ok {
		tracer().Errorf("harfbuzz called with foreign plan of shaper %s", plan.ShaperName())
		return false
	}
	hbfont := hb.NewFont(data.(*hbtt.Font)) // HarfBuzz fonts are not safe for concurrent use
	feats := make([]hb.Feature, len(features))
	for i, f := range features {
		feats[i] = Feature4HB(f)
	}
	runes := buf.Runes()
	hbbuf := hb.NewBuffer()
	hbbuf.Props = *hbprops
	hbbuf.AddRunes(runes, 0, len(runes))
	hbbuf.Shape(hbfont, feats)
	glyphs := make([]glyphing.ShapedGlyph, len(hbbuf.Info))
	for i, ginfo := range hbbuf.Info {
		gpos := &hbbuf.Pos[i]
		g := &glyphs[i]
		g.GID = uint32(ginfo.Glyph)
		g.Cluster = ginfo.Cluster
		g.XAdvance = int32(gpos.XAdvance)
		g.YAdvance = int32(gpos.YAdvance)
		g.XOffset = int32(gpos.XOffset)
		g.YOffset = int32(gpos.YOffset)
		if g.Cluster >= 0 && g.Cluster < len(runes) {
			g.CodePoint = runes[g.Cluster]
		}
	}
	tracer().Debugf("harfbuzz shaped %d code-points into %d glyphs", len(runes), len(glyphs))
	buf.SetGlyphs(glyphs)
	return true
}
