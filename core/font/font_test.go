package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shaping/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.fonts")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go Regular", f.Fontname)
	assert.Equal(t, 2048, f.UnitsPerEm())
	assert.Equal(t, "Go Regular", f.Name())
}

func TestParseGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.fonts")
	defer teardown()
	//
	_, err := ParseOpenTypeFont([]byte("no font"))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestLoadMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shaping.fonts")
	defer teardown()
	//
	_, err := LoadOpenTypeFont("./does/not/exist.ttf")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestFallbackFont(t *testing.T) {
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Same(t, f, FallbackFont(), "fallback font expected to be a singleton")
	assert.NotNil(t, f.SFNT)
}

func TestUnitsPerEmWithoutFont(t *testing.T) {
	var f *ScalableFont
	assert.Equal(t, 1000, f.UnitsPerEm())
	assert.Equal(t, "<none>", f.Name())
}
