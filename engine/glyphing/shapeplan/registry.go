package shapeplan

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/npillmayer/shaping/engine/glyphing/gotext"
	"github.com/npillmayer/shaping/engine/glyphing/harfbuzz"
	"github.com/npillmayer/shaping/engine/glyphing/monospace"
)

// ConfigShaperList is the configuration key for overriding the priority of
// the shapers in the default registry. Its value is a comma separated list of
// shaper names, e.g. "gotext,harfbuzz".
const ConfigShaperList = "shaper-list"

// Registry is an ordered set of shapers, indexed by name. The order of
// shapers is their priority during shaper selection.
// A registry is immutable and safe for concurrent use.
type Registry struct {
	shapers *linkedhashmap.Map // name → glyphing.Shaper
}

// NewRegistry creates a registry with shapers in priority order. If more than
// one shaper has the same name, the first one is kept.
func NewRegistry(shapers ...glyphing.Shaper) *Registry {
	r := &Registry{shapers: linkedhashmap.New()}
	for _, s := range shapers {
		if s == nil {
			continue
		}
		if _, found := r.shapers.Get(s.Name()); found {
			tracer().Errorf("duplicate shaper name %q ignored", s.Name())
			continue
		}
		r.shapers.Put(s.Name(), s)
	}
	return r
}

var defaultRegistry *Registry
var defaultRegistryCreation sync.Once

// DefaultRegistry returns the registry of shapers compiled into this module,
// see NewDefaultRegistry. The priority of shapers may be changed by the
// global configuration (see ConfigShaperList) before the default registry is
// first used.
func DefaultRegistry() *Registry {
	defaultRegistryCreation.Do(func() {
		defaultRegistry = builtinRegistry().Reorder(configuredShaperList())
		tracer().Infof("shapers in priority order: %v", defaultRegistry.Names())
	})
	return defaultRegistry
}

// NewDefaultRegistry creates a registry of the shapers compiled into this
// module: "harfbuzz", "gotext" and "fallback", in this order. If conf is not
// nil, shapers listed for key ConfigShaperList are moved to the front.
func NewDefaultRegistry(conf schuko.Configuration) *Registry {
	r := builtinRegistry()
	if conf != nil {
		r = r.Reorder(splitShaperList(conf.GetString(ConfigShaperList)))
	}
	return r
}

func builtinRegistry() *Registry {
	return NewRegistry(harfbuzz.New(), gotext.New(), monospace.New())
}

func configuredShaperList() []string {
	return splitShaperList(gconf.GetString(ConfigShaperList))
}

func splitShaperList(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, ",")
}

// Reorder returns a registry with the named shapers moved to the front, in
// the order given. Unknown names are ignored, the remaining shapers keep
// their relative order.
func (r *Registry) Reorder(names []string) *Registry {
	if len(names) == 0 {
		return r
	}
	reordered := &Registry{shapers: linkedhashmap.New()}
	for _, name := range names {
		if s, ok := r.Lookup(strings.TrimSpace(name)); ok {
			reordered.shapers.Put(s.Name(), s)
		}
	}
	for _, s := range r.Shapers() {
		if _, found := reordered.shapers.Get(s.Name()); !found {
			reordered.shapers.Put(s.Name(), s)
		}
	}
	return reordered
}

// Lookup finds a shaper by name.
func (r *Registry) Lookup(name string) (glyphing.Shaper, bool) {
	s, found := r.shapers.Get(name)
	if !found {
		return nil, false
	}
	return s.(glyphing.Shaper), true
}

// Shapers returns the shapers of a registry in priority order.
func (r *Registry) Shapers() []glyphing.Shaper {
	values := r.shapers.Values()
	shapers := make([]glyphing.Shaper, len(values))
	for i, v := range values {
		shapers[i] = v.(glyphing.Shaper)
	}
	return shapers
}

// Names returns the names of the shapers of a registry in priority order.
func (r *Registry) Names() []string {
	keys := r.shapers.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// chooseShaper selects the first shaper able to handle face, trying the
// shapers named in shaperList first. Names without a matching shaper are
// skipped. If no shaper can handle face, chooseShaper returns nil.
func (r *Registry) chooseShaper(face *glyphing.Face, shaperList []string) glyphing.Shaper {
	for _, name := range shaperList {
		if s, ok := r.Lookup(name); ok {
			if _, ok = face.ShaperData(s); ok {
				return s
			}
		}
	}
	for _, s := range r.Shapers() {
		if _, ok := face.ShaperData(s); ok {
			return s
		}
	}
	return nil
}
