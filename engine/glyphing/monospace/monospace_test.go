package monospace

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shaping/core/font"
	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planStub struct {
	glyphing.ShapePlan
	props glyphing.SegmentProperties
	data  any
}

func (p planStub) ShaperData() any                         { return p.data }
func (p planStub) Properties() glyphing.SegmentProperties { return p.props }

func shape(t *testing.T, face *glyphing.Face, dir glyphing.Direction, text string) []glyphing.ShapedGlyph {
	s := New()
	_, ok := face.ShaperData(s)
	require.True(t, ok, "fallback shaper must accept every face")
	props := glyphing.SegmentProperties{Direction: dir}
	data, err := s.NewPlanData(face, props, nil, nil)
	require.NoError(t, err)
	buf := glyphing.NewBuffer()
	buf.AddString(text)
	require.True(t, s.Shape(planStub{props: props, data: data}, glyphing.NewFont(face, 10), buf, nil))
	return buf.Glyphs()
}

func TestGraphemeClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.glyphs")
	defer teardown()
	//
	glyphs := shape(t, glyphing.EmptyFace(), glyphing.LeftToRight, "e\u0301a")
	require.Len(t, glyphs, 2)
	assert.Equal(t, 0, glyphs[0].Cluster)
	assert.Equal(t, 2, glyphs[1].Cluster)
	assert.Equal(t, 'e', glyphs[0].CodePoint)
	assert.Equal(t, int32(500), glyphs[0].XAdvance)
	assert.Zero(t, glyphs[0].GID, "empty face has no glyphs")
}

func TestWideCharacters(t *testing.T) {
	glyphs := shape(t, glyphing.EmptyFace(), glyphing.LeftToRight, "a世")
	require.Len(t, glyphs, 2)
	assert.Equal(t, int32(500), glyphs[0].XAdvance)
	assert.Equal(t, int32(1000), glyphs[1].XAdvance)
}

func TestGlyphLookup(t *testing.T) {
	face := glyphing.NewFace(font.FallbackFont())
	glyphs := shape(t, face, glyphing.LeftToRight, "Hi")
	require.Len(t, glyphs, 2)
	assert.NotZero(t, glyphs[0].GID)
	assert.Equal(t, int32(1024), glyphs[0].XAdvance)
}

func TestBackwardDirection(t *testing.T) {
	glyphs := shape(t, glyphing.EmptyFace(), glyphing.RightToLeft, "abc")
	require.Len(t, glyphs, 3)
	assert.Equal(t, 'c', glyphs[0].CodePoint)
	assert.Equal(t, 2, glyphs[0].Cluster)
	assert.Equal(t, 'a', glyphs[2].CodePoint)
}
