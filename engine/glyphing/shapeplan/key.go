package shapeplan

import (
	"slices"

	"github.com/npillmayer/shaping/engine/glyphing"
)

// Key describes a shaping request: everything a plan is computed from,
// except the face. Two requests for the same face with equal keys can share
// a plan.
//
// A key owned by a plan is never modified; accessors return copies.
type Key struct {
	props    glyphing.SegmentProperties
	features []glyphing.Feature
	coords   []int
	shaper   glyphing.Shaper
}

// makeKey creates a key which owns copies of features and coords.
func makeKey(props glyphing.SegmentProperties, features []glyphing.Feature, coords []int) Key {
	return Key{
		props:    props,
		features: slices.Clone(features),
		coords:   slices.Clone(coords),
	}
}

// Equal is true if two keys have equal properties, equal features and
// coordinates (element by element), and the identical shaper.
func (k Key) Equal(other Key) bool {
	return k.props == other.props &&
		slices.Equal(k.features, other.features) &&
		slices.Equal(k.coords, other.coords) &&
		k.shaper == other.shaper
}

// Properties returns the segment properties of a key.
func (k Key) Properties() glyphing.SegmentProperties {
	return k.props
}

// Features returns a copy of the user features of a key.
func (k Key) Features() []glyphing.Feature {
	return slices.Clone(k.features)
}

// Coords returns a copy of the variation coordinates of a key.
func (k Key) Coords() []int {
	return slices.Clone(k.coords)
}

// ShaperName returns the name of the shaper selected for a key, or "" if
// none has been selected.
func (k Key) ShaperName() string {
	if k.shaper == nil {
		return ""
	}
	return k.shaper.Name()
}

// hasNonGlobalFeatures is true if at least one feature applies to a range of
// the text only.
func (k Key) hasNonGlobalFeatures() bool {
	for _, f := range k.features {
		if !f.IsGlobal() {
			return true
		}
	}
	return false
}

// cacheable is false for requests which are unlikely to repeat.
func (k Key) cacheable() bool {
	return !k.hasNonGlobalFeatures() && len(k.coords) == 0
}
