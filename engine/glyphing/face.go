package glyphing

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/shaping/core/font"
)

// Face wraps a scalable font for shaping. A face owns
//
//   - an immutability flag. Once set, it is never cleared. Shape plans make a
//     face immutable before computing anything from it, so cached plans stay
//     valid for the remaining lifetime of the face.
//   - the lazily created face data of every shaper which has been probed
//     with this face.
//   - the head of the face's shape plan cache.
//
// A face is safe for concurrent use.
type Face struct {
	font       *font.ScalableFont
	inert      bool
	immutable  atomic.Bool
	shaperData sync.Map                 // Shaper → lazyData
	plans      atomic.Pointer[PlanNode] // head of plan cache, most recent first
}

// emptyFace is substituted wherever a face is missing.
var emptyFace = &Face{inert: true}

// EmptyFace returns the shared empty face. It is immutable and never holds
// cached shape plans.
func EmptyFace() *Face {
	return emptyFace
}

// NewFace creates a face for a scalable font. If f is nil, the shared empty
// face is returned.
func NewFace(f *font.ScalableFont) *Face {
	if f == nil {
		return EmptyFace()
	}
	return &Face{font: f}
}

// Font returns the scalable font of a face, which is nil for the empty face.
func (face *Face) Font() *font.ScalableFont {
	return face.font
}

// UnitsPerEm returns the number of design units per em for this face.
func (face *Face) UnitsPerEm() int {
	return face.font.UnitsPerEm()
}

// IsInert is true for the empty face.
func (face *Face) IsInert() bool {
	return face.inert
}

// MakeImmutable makes a face immutable. This cannot be undone.
func (face *Face) MakeImmutable() {
	face.immutable.Store(true)
}

// IsImmutable is true if MakeImmutable has been called for this face.
// The empty face is always immutable.
func (face *Face) IsImmutable() bool {
	return face.inert || face.immutable.Load()
}

// ShaperData returns the face data of shaper s, creating it on first use.
// The second return value is false if s cannot handle this face. The outcome
// is memoized: s.NewFaceData is called at most once per face, unless
// concurrent callers race for the first call, in which case the first
// result stored wins.
func (face *Face) ShaperData(s Shaper) (any, bool) {
	data, err := lazyInit(&face.shaperData, s, func() (any, error) {
		return s.NewFaceData(face)
	})
	if err != nil {
		tracer().Debugf("shaper %s cannot handle face %s: %v", s.Name(), face.font.Name(), err)
		return nil, false
	}
	return data, true
}

// PlanCache returns the current head of the face's shape plan cache.
func (face *Face) PlanCache() *PlanNode {
	return face.plans.Load()
}

// CompareAndSwapPlanCache replaces the head of the plan cache by node, if
// the head still is old. It returns false if the head has been changed
// concurrently.
func (face *Face) CompareAndSwapPlanCache(old, node *PlanNode) bool {
	return face.plans.CompareAndSwap(old, node)
}

// Teardown discards the plan cache of a face and gives back the cache's
// reference to every cached plan. It must not be called while the face is
// still in use for shaping.
func (face *Face) Teardown() {
	if face.inert {
		return
	}
	node := face.plans.Swap(nil)
	n := 0
	for ; node != nil; node = node.Next {
		if d, ok := node.Plan.(interface{ Destroy() }); ok {
			d.Destroy()
		}
		n++
	}
	face.shaperData.Range(func(k, v any) bool {
		release(v.(lazyData).data)
		face.shaperData.Delete(k)
		return true
	})
	tracer().Debugf("face %s torn down, dropped %d cached plans", face.font.Name(), n)
}

// --- Font ------------------------------------------------------------------

// Font is a face at a certain size, optionally at a point in the design
// space of a variable font.
//
// A font is safe for concurrent use, with the exception of SetCoords.
type Font struct {
	face       *Face
	ptSize     float64
	coords     []int
	shaperData sync.Map // Shaper → lazyData
}

// NewFont creates a font for a face. If face is nil, the shared empty face is
// used. The face is made immutable.
func NewFont(face *Face, ptSize float64) *Font {
	if face == nil {
		face = EmptyFace()
	}
	face.MakeImmutable()
	if ptSize <= 0 {
		ptSize = 10
	}
	return &Font{face: face, ptSize: ptSize}
}

// Face returns the face of a font.
func (f *Font) Face() *Face {
	return f.face
}

// PtSize returns the size of a font in points.
func (f *Font) PtSize() float64 {
	return f.ptSize
}

// SetCoords sets the variation coordinates of a font, one per design axis.
// It must be called before the font is used for shaping.
func (f *Font) SetCoords(coords []int) {
	f.coords = slices.Clone(coords)
}

// Coords returns the variation coordinates of a font.
func (f *Font) Coords() []int {
	return f.coords
}

// ShaperFontData returns the font data of shaper s, creating it on first use.
// It is memoized the same way as Face.ShaperData.
func (f *Font) ShaperFontData(s Shaper) (any, bool) {
	data, err := lazyInit(&f.shaperData, s, func() (any, error) {
		return s.NewFontData(f)
	})
	if err != nil {
		tracer().Errorf("shaper %s cannot handle font: %v", s.Name(), err)
		return nil, false
	}
	return data, true
}

// --- Lazy shaper data ------------------------------------------------------

type lazyData struct {
	data any
	err  error
}

func lazyInit(m *sync.Map, s Shaper, create func() (any, error)) (any, error) {
	if v, ok := m.Load(s); ok {
		d := v.(lazyData)
		return d.data, d.err
	}
	data, err := create()
	v, loaded := m.LoadOrStore(s, lazyData{data: data, err: err})
	if loaded { // somebody else has been faster
		release(data)
	}
	d := v.(lazyData)
	return d.data, d.err
}

func release(data any) {
	if r, ok := data.(Releaser); ok {
		r.Release()
	}
}
