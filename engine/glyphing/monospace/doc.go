/*
Package monospace implements the fallback shaper, which sets every grapheme
cluster in a fixed-width cell.

The shaper is registered under the name "fallback". It handles any face,
including the empty face, so shaper selection with the default registry
never fails. Glyph advances are derived from the East Asian Width of a
grapheme cluster: narrow clusters get half an em, wide clusters a full em.
Features are ignored.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shaping.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("shaping.glyphs")
}
