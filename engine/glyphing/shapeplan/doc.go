/*
Package shapeplan selects a shaper for a run of text and caches the result
as a shape plan.

A shape plan captures everything about a shaping request that does not
depend on the text itself: the face, the segment properties (script,
language, direction), the user features, the variation coordinates, and
the shaper chosen to do the work. Building a plan means probing shapers
and letting the chosen one precompute its per-request data. Clients
shaping many runs with identical parameters should therefore obtain plans
through CreateCached, which returns an existing plan from the face's cache
if there is one.

Shaper selection

A Registry holds the shapers compiled into a program, in priority order.
For a plan request, shapers named in an optional preference list are
tried first, then all shapers of the registry. The first shaper able to
handle the face wins. The default registry ends with a fallback shaper
which handles every face, so selection cannot fail with it.

Caching

Every face owns a singly linked list of cached plans. The list is never
locked: new plans are prepended with an atomic compare-and-swap of the
list head, and a thread losing the race throws away its plan and starts
over. Under heavy contention for the same face, several threads may build
a plan for the same request, but only one of them ends up in the cache.
There is no upper bound on the number of retries; a thread could in
principle retry forever if other threads keep inserting plans for the
same face.

Requests with range-scoped features or with variation coordinates are
never cached, as they rarely repeat.

Reference counting

Plans are reference counted. Create and CreateCached return a plan with a
reference held by the caller, who must eventually call Destroy. A cached
plan holds one additional reference for the cache, given back when the
face is torn down.

On failure, plan creation returns the inert plan (see Empty) instead of
nil. The inert plan may be handed to every function and method of this
package; executing it fails.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shapeplan

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shaping.plans'.
func tracer() tracing.Trace {
	return tracing.Select("shaping.plans")
}

// mustHold guards against programmer errors, i.e. calls violating the
// documented preconditions of this package.
func mustHold(condition bool, msg string) {
	if !condition {
		panic("shapeplan: " + msg)
	}
}
