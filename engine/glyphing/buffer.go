package glyphing

import (
	"encoding/binary"
	"unicode"

	gtlang "github.com/go-text/typesetting/language"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// ContentType tells what a buffer holds.
type ContentType int

// Buffers start out empty, are filled with code-points, and hold glyphs
// after shaping.
const (
	ContentInvalid ContentType = iota
	ContentUnicode
	ContentGlyphs
)

func (c ContentType) String() string {
	switch c {
	case ContentUnicode:
		return "unicode"
	case ContentGlyphs:
		return "glyphs"
	}
	return "invalid"
}

// DefaultLanguage is used by GuessSegmentProperties for buffers without a
// language.
var DefaultLanguage = language.English

// Buffer holds a run of text for shaping, and the glyphs after shaping.
// A buffer is not safe for concurrent use.
type Buffer struct {
	Props     SegmentProperties
	runes     []rune
	glyphs    []ShapedGlyph
	content   ContentType
	immutable bool
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Len returns the number of items in a buffer: code-points before shaping,
// glyphs after shaping.
func (b *Buffer) Len() int {
	if b.content == ContentGlyphs {
		return len(b.glyphs)
	}
	return len(b.runes)
}

// ContentType returns the kind of items a buffer holds.
func (b *Buffer) ContentType() ContentType {
	return b.content
}

// AddRunes appends code-points to a buffer. The buffer must not hold glyphs
// and must not be immutable.
func (b *Buffer) AddRunes(runes []rune) {
	if b.immutable {
		tracer().Errorf("cannot add text to immutable buffer")
		return
	}
	if b.content == ContentGlyphs {
		tracer().Errorf("cannot add text to buffer holding glyphs")
		return
	}
	b.runes = append(b.runes, runes...)
	b.content = ContentUnicode
}

// AddString appends the code-points of a string to a buffer.
func (b *Buffer) AddString(s string) {
	b.AddRunes([]rune(s))
}

// Runes returns the code-points of a buffer. Clients must not modify them.
func (b *Buffer) Runes() []rune {
	return b.runes
}

// SetGlyphs is called by shapers to replace the buffer's content by glyphs.
func (b *Buffer) SetGlyphs(glyphs []ShapedGlyph) {
	b.glyphs = glyphs
	b.content = ContentGlyphs
}

// Glyphs returns the glyphs of a shaped buffer.
func (b *Buffer) Glyphs() []ShapedGlyph {
	return b.glyphs
}

// MakeImmutable freezes a buffer. This cannot be undone.
func (b *Buffer) MakeImmutable() {
	b.immutable = true
}

// IsImmutable is true after MakeImmutable has been called.
func (b *Buffer) IsImmutable() bool {
	return b.immutable
}

// Reset clears content and segment properties of a mutable buffer.
func (b *Buffer) Reset() {
	if b.immutable {
		return
	}
	b.Props = SegmentProperties{}
	b.runes = b.runes[:0]
	b.glyphs = nil
	b.content = ContentInvalid
}

// GuessSegmentProperties fills in unset segment properties from the buffer's
// text:
//
//   - the script is the script of the first code-point with a definite script.
//   - the direction is the horizontal direction of the script, or, if the
//     script does not tell, the direction of the first strong character.
//   - the language is set to DefaultLanguage.
func (b *Buffer) GuessSegmentProperties() {
	if b.content != ContentUnicode {
		return
	}
	var unknown language.Script
	if b.Props.Script == unknown {
		for _, r := range b.runes {
			if s, ok := scriptOf(r); ok {
				b.Props.Script = s
				break
			}
		}
	}
	if !b.Props.Direction.IsValid() {
		b.Props.Direction = ScriptDirection(b.Props.Script)
		if !b.Props.Direction.IsValid() {
			b.Props.Direction = bidiDirection(b.runes)
		}
	}
	if b.Props.Language == language.Und {
		b.Props.Language = DefaultLanguage
	}
	tracer().Debugf("guessed segment properties %s", b.Props)
}

// scriptOf looks up the script of a code-point, converting from go-text's
// script tags to ISO 15924 scripts.
func scriptOf(r rune) (language.Script, bool) {
	s := gtlang.LookupScript(r)
	if s == gtlang.Common || s == gtlang.Inherited || s == gtlang.Unknown {
		return language.Script{}, false
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(s))
	b[0] = byte(unicode.ToUpper(rune(b[0])))
	script, err := language.ParseScript(string(b[:]))
	if err != nil {
		return language.Script{}, false
	}
	return script, true
}

// rtlScripts are the scripts written right-to-left.
var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Syrc": true, "Thaa": true, "Nkoo": true,
	"Samr": true, "Mand": true, "Adlm": true, "Rohg": true, "Yezi": true,
	"Armi": true, "Avst": true, "Phnx": true, "Phli": true, "Prti": true,
	"Sarb": true, "Narb": true, "Nbat": true, "Palm": true, "Hatr": true,
	"Mani": true, "Phlp": true, "Cprt": true, "Khar": true, "Lydi": true,
	"Merc": true, "Mero": true, "Orkh": true, "Sogd": true, "Sogo": true,
	"Elym": true, "Chrs": true, "Ougr": true, "Hung": true,
}

// ScriptDirection returns the horizontal direction of a script. For scripts
// which do not define a direction (Common, Inherited, Unknown), it returns
// DirectionInvalid.
func ScriptDirection(s language.Script) Direction {
	var unknown language.Script
	if s == unknown {
		return DirectionInvalid
	}
	switch code := s.String(); code {
	case "Zzzz", "Zyyy", "Zinh":
		return DirectionInvalid
	default:
		if rtlScripts[code] {
			return RightToLeft
		}
	}
	return LeftToRight
}

// bidiDirection returns the direction of the first strong character.
func bidiDirection(runes []rune) Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}
