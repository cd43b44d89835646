package shapeplan

import (
	"testing"

	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
)

func TestKeyEquality(t *testing.T) {
	s1, s2 := &fakeShaper{name: "s"}, &fakeShaper{name: "s"}
	kern := glyphing.GlobalFeature("kern", 1)
	k1 := makeKey(latinLTR, []glyphing.Feature{kern}, nil)
	k1.shaper = s1
	k2 := makeKey(latinLTR, []glyphing.Feature{kern}, []int{})
	k2.shaper = s1
	assert.True(t, k1.Equal(k2), "nil and empty coords must be equal")
	k2.shaper = s2
	assert.False(t, k1.Equal(k2), "shapers are compared by identity")
	k2 = makeKey(latinLTR, []glyphing.Feature{glyphing.GlobalFeature("kern", 0)}, nil)
	k2.shaper = s1
	assert.False(t, k1.Equal(k2))
	props := latinLTR
	props.Direction = glyphing.RightToLeft
	k2 = makeKey(props, []glyphing.Feature{kern}, nil)
	k2.shaper = s1
	assert.False(t, k1.Equal(k2))
	assert.Equal(t, "s", k1.ShaperName())
	assert.Equal(t, "", Key{}.ShaperName())
}

func TestKeyCacheable(t *testing.T) {
	assert.True(t, makeKey(latinLTR, nil, nil).cacheable())
	assert.True(t, makeKey(latinLTR, []glyphing.Feature{glyphing.GlobalFeature("liga", 1)}, nil).cacheable())
	ranged := glyphing.Feature{Tag: glyphing.MakeTag("liga"), Value: 1, Start: 2, End: 5}
	assert.False(t, makeKey(latinLTR, []glyphing.Feature{ranged}, nil).cacheable())
	open := glyphing.Feature{Tag: glyphing.MakeTag("liga"), Value: 1, Start: 2, End: glyphing.FeatureGlobalEnd}
	assert.False(t, makeKey(latinLTR, []glyphing.Feature{open}, nil).cacheable())
	assert.False(t, makeKey(latinLTR, nil, []int{0}).cacheable())
}
