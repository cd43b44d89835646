package shapeplan

import (
	"github.com/npillmayer/shaping/engine/glyphing"
)

// Execute shapes the text in buf with font, following plan p. features are
// applied to the whole buffer; they may differ from the features p has been
// created with.
//
// Execute panics if buf is immutable or does not contain Unicode text, if
// font's face is not the face p has been created for, or if the segment
// properties of buf differ from those of p. An empty buffer is left alone
// and reported as success.
//
// Executing the inert plan fails.
func (p *Plan) Execute(font *glyphing.Font, buf *glyphing.Buffer, features []glyphing.Feature) bool {
	if buf.Len() == 0 {
		return true
	}
	mustHold(!buf.IsImmutable(), "cannot shape an immutable buffer")
	mustHold(buf.ContentType() == glyphing.ContentUnicode, "buffer does not contain Unicode text")
	if p.IsInert() {
		return false
	}
	mustHold(font != nil && font.Face() == p.face, "font's face does not match the face of the plan")
	mustHold(buf.Props == p.key.props, "buffer's segment properties do not match the plan")
	shaper := p.key.shaper
	if _, ok := font.ShaperFontData(shaper); !ok {
		return false
	}
	return shaper.Shape(p, font, buf, features)
}

// Shape shapes buf with font, using the default registry.
// See Registry.Shape.
func Shape(font *glyphing.Font, buf *glyphing.Buffer, features []glyphing.Feature, shaperList []string) bool {
	return DefaultRegistry().Shape(font, buf, features, shaperList)
}

// Shape shapes buf with font, using a cached plan for font's face. Segment
// properties of buf which are not set are guessed from its text. The
// variation coordinates of font are part of the plan request.
func (r *Registry) Shape(font *glyphing.Font, buf *glyphing.Buffer, features []glyphing.Feature,
	shaperList []string) bool {
	//
	if buf.Len() == 0 {
		return true
	}
	buf.GuessSegmentProperties()
	plan := r.CreateCached(font.Face(), buf.Props, features, font.Coords(), shaperList)
	defer plan.Destroy()
	return plan.Execute(font, buf, features)
}
