package shapeplan

import (
	"sync/atomic"

	"github.com/npillmayer/shaping/core"
	"github.com/npillmayer/shaping/engine/glyphing"
)

// fakeShaper lets tests observe shaper selection and dispatch.
type fakeShaper struct {
	name       string
	rejectAll  bool // refuse every face
	rejectWhen func(*glyphing.Face) bool
	planFail   bool
	plans      atomic.Int32 // plan data created
	released   atomic.Int32 // plan data released
	calls      atomic.Int32 // calls of Shape
}

var _ glyphing.Shaper = (*fakeShaper)(nil)

type fakePlanData struct {
	s *fakeShaper
}

func (d *fakePlanData) Release() {
	d.s.released.Add(1)
}

func (s *fakeShaper) Name() string { return s.name }

func (s *fakeShaper) NewFaceData(face *glyphing.Face) (any, error) {
	if s.rejectAll || (s.rejectWhen != nil && s.rejectWhen(face)) {
		return nil, core.Error(core.EUNSUPPORTED, "%s does not support face", s.name)
	}
	return s.name, nil
}

func (s *fakeShaper) NewFontData(*glyphing.Font) (any, error) {
	return nil, nil
}

func (s *fakeShaper) NewPlanData(*glyphing.Face, glyphing.SegmentProperties, []glyphing.Feature, []int) (any, error) {
	if s.planFail {
		return nil, core.Error(core.EINTERNAL, "%s cannot create plans", s.name)
	}
	s.plans.Add(1)
	return &fakePlanData{s: s}, nil
}

// Shape outputs one glyph per code-point, with the glyph index set to the
// number of the call.
func (s *fakeShaper) Shape(plan glyphing.ShapePlan, font *glyphing.Font, buf *glyphing.Buffer,
	features []glyphing.Feature) bool {
	//
	n := s.calls.Add(1)
	glyphs := make([]glyphing.ShapedGlyph, len(buf.Runes()))
	for i, r := range buf.Runes() {
		glyphs[i] = glyphing.ShapedGlyph{GID: uint32(n), Cluster: i, CodePoint: r}
	}
	buf.SetGlyphs(glyphs)
	return true
}

// livePlans is the number of plans of s not yet destroyed.
func (s *fakeShaper) livePlans() int32 {
	return s.plans.Load() - s.released.Load()
}

func rejectInert(face *glyphing.Face) bool {
	return face.IsInert()
}
