package shapeplan

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shaping/core/font"
	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExecution(t *testing.T) (*fakeShaper, *Plan, *glyphing.Font) {
	s := &fakeShaper{name: "fake"}
	face := glyphing.NewFace(font.FallbackFont())
	t.Cleanup(face.Teardown)
	plan := NewRegistry(s).CreateCached(face, latinLTR, nil, nil, nil)
	require.False(t, plan.IsInert())
	t.Cleanup(plan.Destroy)
	return s, plan, glyphing.NewFont(face, 12)
}

func latinBuffer(text string) *glyphing.Buffer {
	buf := glyphing.NewBuffer()
	buf.AddString(text)
	buf.Props = latinLTR
	return buf
}

func TestExecuteEmptyBuffer(t *testing.T) {
	s, plan, f := setupExecution(t)
	buf := glyphing.NewBuffer()
	assert.True(t, plan.Execute(f, buf, nil))
	assert.Equal(t, int32(0), s.calls.Load(), "shaper must not be called for empty buffer")
	assert.True(t, Empty().Execute(f, buf, nil))
}

func TestExecute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.plans")
	defer teardown()
	//
	s, plan, f := setupExecution(t)
	buf := latinBuffer("abc")
	liga := []glyphing.Feature{glyphing.GlobalFeature("liga", 0)}
	require.True(t, plan.Execute(f, buf, liga))
	assert.Equal(t, int32(1), s.calls.Load())
	assert.Equal(t, glyphing.ContentGlyphs, buf.ContentType())
	assert.Equal(t, 3, buf.Len())
}

func TestExecutePreconditions(t *testing.T) {
	_, plan, f := setupExecution(t)
	immutable := latinBuffer("abc")
	immutable.MakeImmutable()
	assert.Panics(t, func() { plan.Execute(f, immutable, nil) }, "immutable buffer")
	//
	shaped := latinBuffer("abc")
	shaped.SetGlyphs([]glyphing.ShapedGlyph{{GID: 1}})
	assert.Panics(t, func() { plan.Execute(f, shaped, nil) }, "buffer holds glyphs")
	//
	otherFont := glyphing.NewFont(glyphing.NewFace(font.FallbackFont()), 12)
	assert.Panics(t, func() { plan.Execute(otherFont, latinBuffer("abc"), nil) }, "face mismatch")
	//
	rtl := latinBuffer("abc")
	rtl.Props.Direction = glyphing.RightToLeft
	assert.Panics(t, func() { plan.Execute(f, rtl, nil) }, "properties mismatch")
}

func TestShaperConsistency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.plans")
	defer teardown()
	//
	a := &fakeShaper{name: "a"}
	b := &fakeShaper{name: "b"}
	registry := NewRegistry(a, b)
	face := glyphing.NewFace(font.FallbackFont())
	defer face.Teardown()
	f := glyphing.NewFont(face, 12)
	for _, list := range [][]string{nil, {"b"}, {"a"}, {"x", "b"}} {
		plan := registry.CreateCached(face, latinLTR, nil, nil, list)
		before := map[string]int32{"a": a.calls.Load(), "b": b.calls.Load()}
		require.True(t, plan.Execute(f, latinBuffer("xy"), nil))
		after := map[string]int32{"a": a.calls.Load(), "b": b.calls.Load()}
		for name := range before {
			if name == plan.ShaperName() {
				assert.Equal(t, before[name]+1, after[name], "plan's shaper %s must be called", name)
			} else {
				assert.Equal(t, before[name], after[name], "shaper %s must not be called", name)
			}
		}
		plan.Destroy()
	}
}

func TestShapeWithDefaultRegistry(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	face := glyphing.NewFace(font.FallbackFont())
	defer face.Teardown()
	f := glyphing.NewFont(face, 12)
	for i := 0; i < 2; i++ {
		buf := glyphing.NewBuffer()
		buf.AddString("Hello")
		require.True(t, Shape(f, buf, nil, nil))
		assert.Equal(t, 5, buf.Len())
		assert.Equal(t, glyphing.LeftToRight, buf.Props.Direction, "properties must have been guessed")
	}
	plans := CachedPlans(face)
	require.Len(t, plans, 1, "second run must reuse the cached plan")
	assert.Equal(t, DefaultRegistry().Shapers()[0].Name(), plans[0].ShaperName())
	assert.Equal(t, 1, plans[0].ReferenceCount())
	//
	empty := glyphing.NewFont(nil, 12)
	buf := glyphing.NewBuffer()
	buf.AddString("Hello")
	require.True(t, Shape(empty, buf, nil, nil))
	assert.Equal(t, 5, buf.Len())
}

func TestConfiguredShaperList(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		ConfigShaperList: "gotext,fallback",
	})
	defer teardown()
	//
	assert.Equal(t, []string{"gotext", "fallback"}, configuredShaperList())
	r := builtinRegistry().Reorder(configuredShaperList())
	assert.Equal(t, []string{"gotext", "fallback", "harfbuzz"}, r.Names())
}
