/*
Package font is for loading and locating scalable fonts.

We stick to the following nomenclature:

* A "scalable font" is a font file, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".
It is represented by ScalableFont and holds the raw font binary.

* A "face" (package glyphing) wraps a scalable font for text shaping and
owns the shaping-related caches. A "font" (package glyphing) is a face at a
certain point size.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shaping/core"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'shaping.fonts'
func tracer() tracing.Trace {
	return tracing.Select("shaping.fonts")
}

// ScalableFont is a font loaded from a font file (or from memory).
// Binary and SFNT must not be modified after the font has been handed to
// a face.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container; safe for concurrent use with separate sfnt.Buffers
}

// LoadOpenTypeFont loads a font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont creates a scalable font from the binary data of a font file.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	tracer().Debugf("parsed font %q", f.Fontname)
	return
}

// LocateFont loads a font given either by a path or by a file name of a
// font installed on the system, e.g. "DejaVuSans.ttf".
// If name carries no extension, ".ttf" is assumed.
func LocateFont(name string) (*ScalableFont, error) {
	if _, err := os.Stat(name); err == nil {
		return LoadOpenTypeFont(name)
	}
	if filepath.Ext(name) == "" {
		name += ".ttf"
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	tracer().Infof("located font %s at %s", name, fpath)
	return LoadOpenTypeFont(fpath)
}

// UnitsPerEm returns the number of design units per em of a font,
// or 1000 if this information is not available.
func (sf *ScalableFont) UnitsPerEm() int {
	if sf == nil || sf.SFNT == nil {
		return 1000
	}
	return int(sf.SFNT.UnitsPerEm())
}

// Name returns a normalized name for a font, suitable for display.
func (sf *ScalableFont) Name() string {
	if sf == nil {
		return "<none>"
	}
	if sf.Fontname != "" {
		return sf.Fontname
	}
	return strings.TrimSuffix(filepath.Base(sf.Filepath), filepath.Ext(sf.Filepath))
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}
