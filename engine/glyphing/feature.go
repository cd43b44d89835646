package glyphing

import (
	"strconv"
	"strings"

	"github.com/npillmayer/shaping/core"
)

// ParseFeature parses a feature setting in the syntax known from HarfBuzz and
// CSS font-feature-settings:
//
//	kern          turn kerning on for the whole buffer
//	+kern         same
//	-kern         turn kerning off
//	kern=0        same
//	aalt=2        select the second alternate
//	liga[3:5]     ligatures for code-points 3 and 4 only
//	liga[3]       ligatures for code-point 3 only
//	liga[3:]      ligatures from code-point 3 to the end
//	"liga"=off    quoted tags, boolean values
func ParseFeature(s string) (Feature, error) {
	p := featureParser{s: strings.TrimSpace(s)}
	f := Feature{Value: 1, Start: FeatureGlobalStart, End: FeatureGlobalEnd}
	switch p.peek() {
	case '-':
		f.Value = 0
		p.pos++
	case '+':
		p.pos++
	}
	tag, err := p.tag()
	if err != nil {
		return Feature{}, err
	}
	f.Tag = MakeTag(tag)
	if p.peek() == '[' {
		if f.Start, f.End, err = p.rng(); err != nil {
			return Feature{}, err
		}
	}
	if p.peek() == '=' {
		p.pos++
		if f.Value, err = p.value(); err != nil {
			return Feature{}, err
		}
	}
	if !p.done() {
		return Feature{}, errFeature(s, "trailing characters")
	}
	return f, nil
}

// ParseFeatures parses a comma separated list of features.
// An empty string results in an empty list.
func ParseFeatures(list string) ([]Feature, error) {
	var features []Feature
	for _, s := range strings.Split(list, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		f, err := ParseFeature(s)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// String returns a feature in a format accepted by ParseFeature.
func (f Feature) String() string {
	var b strings.Builder
	if f.Value == 0 {
		b.WriteByte('-')
	}
	b.WriteString(strings.TrimRight(f.Tag.String(), " "))
	if !f.IsGlobal() {
		b.WriteByte('[')
		if f.Start != FeatureGlobalStart {
			b.WriteString(strconv.Itoa(f.Start))
		}
		if f.End != f.Start+1 {
			b.WriteByte(':')
			if f.End != FeatureGlobalEnd {
				b.WriteString(strconv.Itoa(f.End))
			}
		}
		b.WriteByte(']')
	}
	if f.Value > 1 {
		b.WriteByte('=')
		b.WriteString(strconv.FormatUint(uint64(f.Value), 10))
	}
	return b.String()
}

func errFeature(s string, reason string) error {
	return core.Error(core.EINVALID, "cannot parse feature %q: %s", s, reason)
}

type featureParser struct {
	s   string
	pos int
}

func (p *featureParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *featureParser) done() bool {
	return p.pos >= len(p.s)
}

func (p *featureParser) tag() (string, error) {
	if q := p.peek(); q == '"' || q == '\'' {
		end := strings.IndexByte(p.s[p.pos+1:], q)
		if end < 1 || end > 4 {
			return "", errFeature(p.s, "malformed quoted tag")
		}
		tag := p.s[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return tag, nil
	}
	start := p.pos
	for p.pos < len(p.s) && isTagChar(p.s[p.pos]) {
		p.pos++
	}
	if n := p.pos - start; n < 1 || n > 4 {
		return "", errFeature(p.s, "tag must have 1 to 4 characters")
	}
	return p.s[start:p.pos], nil
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// rng parses "[start:end]", where both positions are optional.
func (p *featureParser) rng() (start, end int, err error) {
	rb := strings.IndexByte(p.s[p.pos:], ']')
	if rb < 0 {
		return 0, 0, errFeature(p.s, "missing ']'")
	}
	inner := p.s[p.pos+1 : p.pos+rb]
	p.pos += rb + 1
	start, end = FeatureGlobalStart, FeatureGlobalEnd
	from, to, hasColon := strings.Cut(inner, ":")
	if !hasColon {
		from, to, hasColon = strings.Cut(inner, ";")
	}
	if from != "" {
		if start, err = strconv.Atoi(from); err != nil || start < 0 {
			return 0, 0, errFeature(p.s, "invalid range start")
		}
	}
	if !hasColon {
		if from != "" {
			end = start + 1
		}
		return start, end, nil
	}
	if to != "" {
		if end, err = strconv.Atoi(to); err != nil || end < start {
			return 0, 0, errFeature(p.s, "invalid range end")
		}
	}
	return start, end, nil
}

func (p *featureParser) value() (uint32, error) {
	v := p.s[p.pos:]
	p.pos = len(p.s)
	switch strings.ToLower(v) {
	case "on", "true":
		return 1, nil
	case "off", "false":
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, errFeature(p.s, "invalid value")
	}
	return uint32(n), nil
}
