/*
Package glyphing holds the types shared between shape plans and the shapers
(shaping backends) which convert text to sequences of glyphs.

Text is handed to a shaper in a Buffer, together with a Font (a Face at a
certain size) and a list of OpenType features. Which shaper is used and how
its per-request setup is cached is the business of package shapeplan;
package glyphing only defines the contract between the two sides:

  - Face and Font carry the per-shaper data created lazily by a shaper, and
    a face owns the head of its shape plan cache.
  - Buffer carries the input code-points, their segment properties, and,
    after shaping, the resulting glyphs.
  - Shaper is the interface every shaping backend implements.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shaping.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("shaping.glyphs")
}
