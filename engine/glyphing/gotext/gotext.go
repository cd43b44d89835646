/*
Package gotext implements a shaper on top of the go-text typesetting library.

The shaper is registered under the name "gotext". It handles every face
holding an OpenType or TrueType font. Feature settings are not passed on to
the underlying shaper; it always applies the default features of a script.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gotext

import (
	"bytes"
	"encoding/binary"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shaping/core"
	"github.com/npillmayer/shaping/engine/glyphing"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'shaping.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("shaping.glyphs")
}

// Name is the name of the go-text shaper.
const Name = "gotext"

// Shaper shapes text with go-text.
type Shaper struct {
	name string
}

var _ glyphing.Shaper = (*Shaper)(nil)

// New creates a go-text shaper.
func New() *Shaper {
	return &Shaper{name: Name}
}

// Name returns "gotext".
func (s *Shaper) Name() string {
	return s.name
}

// NewFaceData parses the binary font data of face. The parsed font is safe
// for concurrent use; go-text faces are created per shaping call.
func (s *Shaper) NewFaceData(face *glyphing.Face) (any, error) {
	if face.IsInert() || face.Font() == nil || len(face.Font().Binary) == 0 {
		return nil, core.Error(core.EMISSING, "gotext needs a face with font data")
	}
	gtface, err := gtfont.ParseTTF(bytes.NewReader(face.Font().Binary))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "gotext cannot parse font %s", face.Font().Name())
	}
	return gtface.Font, nil
}

// NewFontData does nothing.
func (s *Shaper) NewFontData(font *glyphing.Font) (any, error) {
	return nil, nil
}

type planData struct {
	dir    di.Direction
	script gtlang.Script
	lang   gtlang.Language
}

// NewPlanData converts the segment properties of a plan.
func (s *Shaper) NewPlanData(face *glyphing.Face, props glyphing.SegmentProperties,
	features []glyphing.Feature, coords []int) (any, error) {
	//
	pd := &planData{
		dir:    direction(props.Direction),
		script: script(props.Script),
	}
	if props.Language != language.Und {
		pd.lang = gtlang.NewLanguage(props.Language.String())
	}
	return pd, nil
}

// Shape shapes the code-points of buf. Glyph positions are in font design units.
func (s *Shaper) Shape(plan glyphing.ShapePlan, font *glyphing.Font, buf *glyphing.Buffer,
	features []glyphing.Feature) bool {
	//
	data, ok := font.Face().ShaperData(s)
	if !ok {
		return false
	}
	pd, ok := plan.ShaperData().(*planData)
	if !ok {
		tracer().Errorf("gotext called with foreign plan of shaper %s", plan.ShaperName())
		return false
	}
	runes := buf.Runes()
	upem := font.Face().UnitsPerEm()
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: pd.dir,
		Face:      gtfont.NewFace(data.(*gtfont.Font)), // faces are not safe for concurrent use
		Size:      fixed.I(upem),                       // 1 pixel per design unit
		Script:    pd.script,
		Language:  pd.lang,
	}
	output := (&shaping.HarfbuzzShaper{}).Shape(input)
	glyphs := make([]glyphing.ShapedGlyph, len(output.Glyphs))
	vertical := pd.dir.IsVertical()
	for i, g := range output.Glyphs {
		sg := &glyphs[i]
		sg.GID = uint32(g.GlyphID)
		sg.Cluster = g.TextIndex()
		if vertical {
			sg.YAdvance = int32(g.Advance.Round())
		} else {
			sg.XAdvance = int32(g.Advance.Round())
		}
		sg.XOffset = int32(g.XOffset.Round())
		sg.YOffset = int32(g.YOffset.Round())
		if sg.Cluster >= 0 && sg.Cluster < len(runes) {
			sg.CodePoint = runes[sg.Cluster]
		}
	}
	tracer().Debugf("gotext shaped %d code-points into %d glyphs", len(runes), len(glyphs))
	buf.SetGlyphs(glyphs)
	return true
}

func direction(d glyphing.Direction) di.Direction {
	switch d {
	case glyphing.RightToLeft:
		return di.DirectionRTL
	case glyphing.TopToBottom:
		return di.DirectionTTB
	case glyphing.BottomToTop:
		return di.DirectionBTT
	}
	return di.DirectionLTR
}

// script converts an ISO 15924 script to a go-text script. go-text keeps the
// four letters of the code as they are, e.g. 'Latn'.
func script(s language.Script) gtlang.Script {
	var none language.Script
	if s == none {
		return gtlang.Unknown
	}
	return gtlang.Script(binary.BigEndian.Uint32([]byte(s.String())))
}
