package shapeplan

import (
	"sync"
	"sync/atomic"

	"github.com/npillmayer/shaping/engine/glyphing"
)

// Plan is a shape plan: a shaper selected for a shaping request, together
// with the shaper's data precomputed for this request.
//
// Plans are immutable and safe for concurrent use. They are reference
// counted, see Reference and Destroy.
type Plan struct {
	refs     atomic.Int32
	inert    bool
	face     *glyphing.Face // identity only
	key      Key
	data     any      // the shaper's plan data
	userData sync.Map // *UserDataKey → *userDataEntry
}

var _ glyphing.ShapePlan = (*Plan)(nil)

// emptyPlan is returned whenever a plan cannot be created.
var emptyPlan = Plan{inert: true}

// Empty returns the inert plan. It is shared by all clients and never
// destroyed. Executing it fails.
func Empty() *Plan {
	return &emptyPlan
}

// IsInert is true for the inert plan. A nil plan is treated as inert, too.
func (p *Plan) IsInert() bool {
	return p == nil || p.inert
}

// Reference increments the reference count of p and returns p.
func (p *Plan) Reference() *Plan {
	if p.IsInert() {
		return p
	}
	p.refs.Add(1)
	return p
}

// Destroy decrements the reference count of p. The call which drops the count
// to zero releases the plan's resources: user data is destroyed and the
// shaper's plan data is released. Calling Destroy more often than the plan
// has been referenced is a programming error.
func (p *Plan) Destroy() {
	if p.IsInert() {
		return
	}
	n := p.refs.Add(-1)
	if n > 0 {
		return
	}
	mustHold(n == 0, "shape plan destroyed more often than referenced")
	tracer().Debugf("destroying shape plan for shaper %s", p.key.ShaperName())
	p.userData.Range(func(k, v any) bool {
		p.userData.Delete(k)
		v.(*userDataEntry).destroy()
		return true
	})
	if r, ok := p.data.(glyphing.Releaser); ok {
		r.Release()
	}
	p.data = nil
	p.key = Key{}
}

// ReferenceCount returns the current reference count of p, for diagnostics.
// It is 0 for the inert plan.
func (p *Plan) ReferenceCount() int {
	if p.IsInert() {
		return 0
	}
	return int(p.refs.Load())
}

// ShaperName returns the name of the shaper which executes p. It is "" for
// the inert plan.
func (p *Plan) ShaperName() string {
	if p.IsInert() {
		return ""
	}
	return p.key.ShaperName()
}

// Key returns the key of p.
func (p *Plan) Key() Key {
	if p.IsInert() {
		return Key{}
	}
	return p.key
}

// Face returns the face p has been created for. It is to be used for
// identity checks only.
func (p *Plan) Face() *glyphing.Face {
	if p.IsInert() {
		return nil
	}
	return p.face
}

// ShaperData returns the data the shaper has precomputed for p.
func (p *Plan) ShaperData() any {
	if p.IsInert() {
		return nil
	}
	return p.data
}

// Properties returns the segment properties p has been created for.
func (p *Plan) Properties() glyphing.SegmentProperties {
	if p.IsInert() {
		return glyphing.SegmentProperties{}
	}
	return p.key.props
}

// UserFeatures returns the features p has been created with.
// Clients must not modify the slice.
func (p *Plan) UserFeatures() []glyphing.Feature {
	if p.IsInert() {
		return nil
	}
	return p.key.features
}

// Coords returns the variation coordinates p has been created with.
// Clients must not modify the slice.
func (p *Plan) Coords() []int {
	if p.IsInert() {
		return nil
	}
	return p.key.coords
}

// --- User data -------------------------------------------------------------

// UserDataKey identifies user data attached to plans. Clients create one key
// per kind of data, usually as a package level variable.
type UserDataKey struct {
	name string
}

// NewUserDataKey creates a user data key. name is for debugging only; keys
// are distinguished by identity.
func NewUserDataKey(name string) *UserDataKey {
	return &UserDataKey{name: name}
}

func (k *UserDataKey) String() string {
	return k.name
}

type userDataEntry struct {
	data      any
	destroyFn func(any)
}

func (e *userDataEntry) destroy() {
	if e.destroyFn != nil {
		e.destroyFn(e.data)
	}
}

// SetUserData attaches data to p under key. destroy, if not nil, is called
// with data when the data is replaced or removed, or when p is destroyed.
//
// If replace is false and p already holds data for key, nothing is changed
// and SetUserData returns false. Setting nil data with a nil destroy function
// removes the data for key. The inert plan does not accept user data.
func (p *Plan) SetUserData(key *UserDataKey, data any, destroy func(any), replace bool) bool {
	if p.IsInert() || key == nil {
		return false
	}
	if data == nil && destroy == nil {
		if old, loaded := p.userData.LoadAndDelete(key); loaded {
			old.(*userDataEntry).destroy()
		}
		return true
	}
	entry := &userDataEntry{data: data, destroyFn: destroy}
	if !replace {
		_, loaded := p.userData.LoadOrStore(key, entry)
		return !loaded
	}
	if old, loaded := p.userData.Swap(key, entry); loaded {
		old.(*userDataEntry).destroy()
	}
	return true
}

// UserData returns the data attached to p under key, or nil.
func (p *Plan) UserData(key *UserDataKey) any {
	if p.IsInert() || key == nil {
		return nil
	}
	if v, ok := p.userData.Load(key); ok {
		return v.(*userDataEntry).data
	}
	return nil
}
