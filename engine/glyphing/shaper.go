package glyphing

// A Shaper creates a sequence of glyphs from a sequence of Unicode
// code-points. Shapers are the backends of shape plans: package shapeplan
// selects one shaper per plan and dispatches to it.
//
// A shaper's setup work is split into three lazily created pieces of data:
//
//   - face data, created once per (face, shaper) by NewFaceData. A shaper
//     signals that it cannot handle a face by returning an error; this is the
//     capability probe used during shaper selection.
//   - font data, created once per (font, shaper) by NewFontData, just before
//     the first shaping call with this font.
//   - plan data, created once per shape plan by NewPlanData.
//
// Face data and font data are memoized by Face and Font, respectively. If
// the data returned implements Releaser, it is released when it is
// discarded.
//
// Shaper values are used as identities (compared with ==), so implementations
// must be comparable, usually pointers to non-empty structs. All methods must
// be safe for concurrent use.
type Shaper interface {
	Name() string
	NewFaceData(face *Face) (any, error)
	NewFontData(font *Font) (any, error)
	NewPlanData(face *Face, props SegmentProperties, features []Feature, coords []int) (any, error)
	// Shape shapes the code-points of buf, replacing them by glyphs.
	// features are the features given at shaping time; they are always valid
	// for the buffer but may differ from the ones the plan has been created with.
	Shape(plan ShapePlan, font *Font, buf *Buffer, features []Feature) bool
}

// ShapePlan is what a shaper gets to see of a shape plan.
type ShapePlan interface {
	ShaperName() string
	ShaperData() any
	Properties() SegmentProperties
	UserFeatures() []Feature
	Coords() []int
}

// Releaser is implemented by shaper data which holds resources to give back
// when the data is discarded.
type Releaser interface {
	Release()
}

// PlanNode is a node in the singly linked list of cached shape plans of a
// face. Nodes are immutable once published through
// Face.CompareAndSwapPlanCache.
type PlanNode struct {
	Plan ShapePlan
	Next *PlanNode
}
