package gotext

import (
	"testing"

	"github.com/go-text/typesetting/di"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shaping/core/font"
	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestScriptConversion(t *testing.T) {
	assert.Equal(t, gtlang.Latin, script(language.MustParseScript("Latn")))
	assert.Equal(t, gtlang.Arabic, script(language.MustParseScript("Arab")))
	assert.Equal(t, gtlang.Unknown, script(language.Script{}))
}

func TestArabicPlanData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.glyphs")
	defer teardown()
	//
	s := New()
	face := glyphing.NewFace(font.FallbackFont())
	defer face.Teardown()
	props := glyphing.SegmentProperties{
		Script:    language.MustParseScript("Arab"),
		Language:  language.Arabic,
		Direction: glyphing.RightToLeft,
	}
	data, err := s.NewPlanData(face, props, nil, nil)
	require.NoError(t, err)
	pd, ok := data.(*planData)
	require.True(t, ok)
	assert.Equal(t, gtlang.Arabic, pd.script)
	assert.Equal(t, di.DirectionRTL, pd.dir)
	assert.Equal(t, gtlang.NewLanguage("ar"), pd.lang)
	//
	buf := glyphing.NewBuffer()
	buf.AddString("\u0633\u0644\u0627\u0645")
	buf.Props = props
	require.True(t, s.Shape(planStub{data: data}, glyphing.NewFont(face, 12), buf, nil))
	glyphs := buf.Glyphs()
	require.NotEmpty(t, glyphs)
	for _, g := range glyphs {
		assert.GreaterOrEqual(t, g.Cluster, 0)
		assert.Less(t, g.Cluster, 4)
	}
}

func TestDirectionConversion(t *testing.T) {
	assert.Equal(t, di.DirectionLTR, direction(glyphing.LeftToRight))
	assert.Equal(t, di.DirectionRTL, direction(glyphing.RightToLeft))
	assert.Equal(t, di.DirectionTTB, direction(glyphing.TopToBottom))
	assert.Equal(t, di.DirectionBTT, direction(glyphing.BottomToTop))
}

func TestRejectsEmptyFace(t *testing.T) {
	_, err := New().NewFaceData(glyphing.EmptyFace())
	assert.Error(t, err)
}

// planStub stands in for a shape plan, holding only the shaper data.
type planStub struct {
	glyphing.ShapePlan
	data any
}

func (p planStub) ShaperData() any { return p.data }

func TestShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.glyphs")
	defer teardown()
	//
	s := New()
	face := glyphing.NewFace(font.FallbackFont())
	_, ok := face.ShaperData(s)
	require.True(t, ok)
	props := glyphing.SegmentProperties{
		Script:    language.MustParseScript("Latn"),
		Language:  language.English,
		Direction: glyphing.LeftToRight,
	}
	data, err := s.NewPlanData(face, props, nil, nil)
	require.NoError(t, err)
	buf := glyphing.NewBuffer()
	buf.AddString("Hello")
	buf.Props = props
	require.True(t, s.Shape(planStub{data: data}, glyphing.NewFont(face, 12), buf, nil))
	glyphs := buf.Glyphs()
	require.Len(t, glyphs, 5)
	for i, g := range glyphs {
		assert.NotZero(t, g.GID)
		assert.Positive(t, g.XAdvance)
		assert.Equal(t, i, g.Cluster)
	}
	assert.Equal(t, 'o', glyphs[4].CodePoint)
}
