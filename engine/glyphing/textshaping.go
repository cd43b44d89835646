package glyphing

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in. The zero value is not a valid direction.
const (
	DirectionInvalid Direction = iota
	LeftToRight
	RightToLeft
	TopToBottom
	BottomToTop
)

// IsValid is false for DirectionInvalid and for out-of-range values.
func (d Direction) IsValid() bool {
	return d >= LeftToRight && d <= BottomToTop
}

// IsHorizontal is true for LeftToRight and RightToLeft.
func (d Direction) IsHorizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// IsVertical is true for TopToBottom and BottomToTop.
func (d Direction) IsVertical() bool {
	return d == TopToBottom || d == BottomToTop
}

// IsBackward is true for RightToLeft and BottomToTop.
func (d Direction) IsBackward() bool {
	return d == RightToLeft || d == BottomToTop
}

// Reverse returns the opposite direction. DirectionInvalid stays invalid.
func (d Direction) Reverse() Direction {
	switch d {
	case LeftToRight:
		return RightToLeft
	case RightToLeft:
		return LeftToRight
	case TopToBottom:
		return BottomToTop
	case BottomToTop:
		return TopToBottom
	}
	return DirectionInvalid
}

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case TopToBottom:
		return "ttb"
	case BottomToTop:
		return "btt"
	}
	return "invalid"
}

// ParseDirection is the inverse of Direction.String. Only the first letter
// is significant, as with HarfBuzz.
func ParseDirection(s string) Direction {
	if s == "" {
		return DirectionInvalid
	}
	switch s[0] | 0x20 {
	case 'l':
		return LeftToRight
	case 'r':
		return RightToLeft
	case 't':
		return TopToBottom
	case 'b':
		return BottomToTop
	}
	return DirectionInvalid
}

// --- Segment properties ----------------------------------------------------

// SegmentProperties describe a run of text that is homogeneous in script,
// language and direction. SegmentProperties are comparable with ==.
type SegmentProperties struct {
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
	Direction Direction       // writing direction
}

// Equal is true if p and other describe the same kind of segment.
func (p SegmentProperties) Equal(other SegmentProperties) bool {
	return p == other
}

func (p SegmentProperties) String() string {
	return fmt.Sprintf("[%s|%s|%s]", p.Script, p.Language, p.Direction)
}

// --- Features --------------------------------------------------------------

// Tag is a 4-byte OpenType tag, e.g. for a script or a feature.
type Tag uint32

// MakeTag creates a tag from a string. Strings shorter than 4 bytes are
// padded with spaces, longer ones are cut.
func MakeTag(s string) Tag {
	var b [4]byte
	for i := range b {
		if i < len(s) {
			b[i] = s[i]
		} else {
			b[i] = ' '
		}
	}
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// Sentinel values for the range of a feature which applies to the whole buffer.
const (
	FeatureGlobalStart = 0
	FeatureGlobalEnd   = math.MaxInt
)

// Feature tells a shaper to set a certain OpenType feature to a value for a
// run of code-points. Start and End are positions of code-points in the
// buffer, End is exclusive.
//
// Features are comparable with ==.
type Feature struct {
	Tag        Tag    // 4-letter feature tag
	Value      uint32 // 0 turns a feature off, 1 turns it on, others select alternates
	Start, End int    // position of code-points to apply feature for
}

// GlobalFeature creates a feature which applies to the whole buffer.
func GlobalFeature(tag string, value uint32) Feature {
	return Feature{
		Tag:   MakeTag(tag),
		Value: value,
		Start: FeatureGlobalStart,
		End:   FeatureGlobalEnd,
	}
}

// IsGlobal is true if a feature applies to the whole buffer.
func (f Feature) IsGlobal() bool {
	return f.Start == FeatureGlobalStart && f.End == FeatureGlobalEnd
}

// --- Output ----------------------------------------------------------------

// A ShapedGlyph is a glyph resulting from shaping. Advances and offsets are
// given in font design units.
type ShapedGlyph struct {
	GID       uint32 // glyph index within font
	Cluster   int    // position of code-point(s) for this glyph in original text
	XAdvance  int32  // advance after glyph has been set
	YAdvance  int32  //
	XOffset   int32  // position of anchor dot for glyph
	YOffset   int32  //
	CodePoint rune   // code-point of first rune to produce this glyph
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, cluster=%d, advance=%d)", g.GID, g.Cluster, g.XAdvance)
}
