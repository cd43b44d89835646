package shapeplan

import (
	"github.com/npillmayer/shaping/engine/glyphing"
)

// Create creates a shape plan for a face, using the default registry.
// See Registry.Create.
func Create(face *glyphing.Face, props glyphing.SegmentProperties, features []glyphing.Feature,
	coords []int, shaperList []string) *Plan {
	//
	return DefaultRegistry().Create(face, props, features, coords, shaperList)
}

// CreateCached returns a shape plan for a face, using the default registry.
// See Registry.CreateCached.
func CreateCached(face *glyphing.Face, props glyphing.SegmentProperties, features []glyphing.Feature,
	coords []int, shaperList []string) *Plan {
	//
	return DefaultRegistry().CreateCached(face, props, features, coords, shaperList)
}

// Create creates a new shape plan for face. features and coords are copied.
// shaperList, if not empty, names the shapers to try first.
//
// props.Direction must be valid; Create panics otherwise. A nil face is
// replaced by the empty face. face is made immutable.
//
// The plan is returned with a reference count of 1. If no shaper can handle
// the request, Create returns the inert plan.
func (r *Registry) Create(face *glyphing.Face, props glyphing.SegmentProperties, features []glyphing.Feature,
	coords []int, shaperList []string) *Plan {
	//
	face, key := r.prepare(face, props, features, coords, shaperList)
	return build(face, key)
}

// CreateCached returns a shape plan for face, preferably one from the face's
// plan cache. The arguments are the same as for Create.
//
// A plan found in the cache is referenced once more for the caller. Otherwise
// a new plan is created and, if the request is cacheable, inserted into the
// cache, which holds its own reference to it. Requests with range-scoped
// features or with variation coordinates, and requests for the empty face,
// are not cached.
//
// Callers must call Destroy on the plan returned when done with it.
func (r *Registry) CreateCached(face *glyphing.Face, props glyphing.SegmentProperties, features []glyphing.Feature,
	coords []int, shaperList []string) *Plan {
	//
	face, key := r.prepare(face, props, features, coords, shaperList)
	if face.IsInert() || !key.cacheable() {
		uncacheable.Inc()
		return build(face, key)
	}
	for {
		head := face.PlanCache()
		if plan := lookup(head, key); plan != nil {
			cacheHits.Inc()
			tracer().Debugf("shape plan cache hit for %v", key.props)
			return plan.Reference()
		}
		cacheMisses.Inc()
		plan := build(face, key)
		if plan.IsInert() {
			return plan
		}
		node := &glyphing.PlanNode{Plan: plan, Next: head}
		if face.CompareAndSwapPlanCache(head, node) {
			tracer().Debugf("shape plan for %v inserted into cache", key.props)
			return plan.Reference()
		}
		casRetries.Inc()
		tracer().Debugf("lost race for plan cache insertion, retrying")
		plan.Destroy()
	}
}

// prepare normalizes the face and computes the key for a plan request,
// including shaper selection.
func (r *Registry) prepare(face *glyphing.Face, props glyphing.SegmentProperties, features []glyphing.Feature,
	coords []int, shaperList []string) (*glyphing.Face, Key) {
	//
	mustHold(props.Direction.IsValid(), "plan requested with invalid direction")
	if face == nil {
		face = glyphing.EmptyFace()
	}
	// keys must stay valid for the lifetime of the face
	face.MakeImmutable()
	key := makeKey(props, features, coords)
	key.shaper = r.chooseShaper(face, shaperList)
	return face, key
}

// build creates a plan for an already computed key.
func build(face *glyphing.Face, key Key) *Plan {
	if key.shaper == nil {
		planFailures.Inc()
		tracer().Errorf("no shaper available for face %s", face.Font().Name())
		return Empty()
	}
	data, err := key.shaper.NewPlanData(face, key.props, key.features, key.coords)
	if err != nil {
		planFailures.Inc()
		tracer().Errorf("shaper %s cannot create plan: %v", key.shaper.Name(), err)
		return Empty()
	}
	plan := &Plan{face: face, key: key, data: data}
	plan.refs.Store(1)
	plansCreated.Inc()
	tracer().Debugf("created shape plan for %v with shaper %s", key.props, key.shaper.Name())
	return plan
}

// lookup searches a plan cache list for a plan with key k.
func lookup(head *glyphing.PlanNode, k Key) *Plan {
	for node := head; node != nil; node = node.Next {
		if plan, ok := node.Plan.(*Plan); ok && plan.key.Equal(k) {
			return plan
		}
	}
	return nil
}

// CachedPlans returns the plans currently in the plan cache of face, most
// recently inserted first. No references are added.
func CachedPlans(face *glyphing.Face) []*Plan {
	if face == nil {
		return nil
	}
	var plans []*Plan
	for node := face.PlanCache(); node != nil; node = node.Next {
		if plan, ok := node.Plan.(*Plan); ok {
			plans = append(plans, plan)
		}
	}
	return plans
}
