package ecs

import (
	"sort"

	"github.com/jakecoffman/cp"
)

// RayHit is one intersection returned by Raycast.
type RayHit struct {
	Entity   Entity
	Point    cp.Vector
	Distance float64
}

// PhysicsWorld owns the Chipmunk space. Every body is kinematic: movement is
// driven by velocities the systems set, and the space is used for integration
// and spatial queries only.
type PhysicsWorld struct {
	space *cp.Space

	bodies      map[Entity]*cp.Body
	bodyShapes  map[*cp.Body][]*cp.Shape
	entityShape map[Entity][]*cp.Shape
}

// NewPhysicsWorld creates a gravity-free top-down space.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:       space,
		bodies:      make(map[Entity]*cp.Body),
		bodyShapes:  make(map[*cp.Body][]*cp.Shape),
		entityShape: make(map[Entity][]*cp.Shape),
	}
}

// AddBody creates a kinematic body owned by e at pos.
func (pw *PhysicsWorld) AddBody(e Entity, pos cp.Vector) *cp.Body {
	if pw == nil || pw.space == nil {
		return nil
	}
	if body, ok := pw.bodies[e]; ok {
		return body
	}
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	body.UserData = e
	pw.space.AddBody(body)
	pw.bodies[e] = body
	return body
}

// AddCircle attaches a circle shape to body and maps hits on it to e. Child
// entities (hit zones, weapon visuals) share their parent's body.
func (pw *PhysicsWorld) AddCircle(e Entity, body *cp.Body, radius float64, offset cp.Vector) *cp.Shape {
	if pw == nil || pw.space == nil || body == nil || radius <= 0 {
		return nil
	}
	shape := cp.NewCircle(body, radius, offset)
	shape.UserData = e
	shape.SetFilter(cp.SHAPE_FILTER_ALL)
	pw.space.AddShape(shape)
	pw.bodyShapes[body] = append(pw.bodyShapes[body], shape)
	pw.entityShape[e] = append(pw.entityShape[e], shape)
	return shape
}

// Body returns the body owned by e.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	body, ok := pw.bodies[e]
	return body, ok
}

// RemoveEntity drops e's shapes and, if e owns a body, the body and every
// shape still attached to it.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, shape := range pw.entityShape[e] {
		pw.removeShape(shape)
	}
	delete(pw.entityShape, e)

	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	for _, shape := range append([]*cp.Shape(nil), pw.bodyShapes[body]...) {
		pw.removeShape(shape)
		if owner, ok := shape.UserData.(Entity); ok {
			delete(pw.entityShape, owner)
		}
	}
	delete(pw.bodyShapes, body)
	pw.space.RemoveBody(body)
	delete(pw.bodies, e)
}

func (pw *PhysicsWorld) removeShape(shape *cp.Shape) {
	body := shape.Body()
	shapes := pw.bodyShapes[body]
	for i, s := range shapes {
		if s == shape {
			pw.bodyShapes[body] = append(shapes[:i], shapes[i+1:]...)
			pw.space.RemoveShape(shape)
			return
		}
	}
}

// Teleport moves a body instantly and recomputes its shapes' cached
// geometry. The broadphase tree catches up on the next Step.
func (pw *PhysicsWorld) Teleport(e Entity, pos cp.Vector) bool {
	body, ok := pw.Body(e)
	if !ok {
		return false
	}
	body.SetPosition(pos)
	body.EachShape(func(shape *cp.Shape) {
		shape.CacheBB()
	})
	return true
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Raycast returns every shape intersected by the segment from origin along dir
// up to maxDistance, nearest first.
func (pw *PhysicsWorld) Raycast(origin, dir cp.Vector, maxDistance float64) []RayHit {
	if pw == nil || pw.space == nil || maxDistance <= 0 {
		return nil
	}
	if dir.Length() == 0 {
		return nil
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mult(maxDistance))

	var hits []RayHit
	pw.space.SegmentQuery(origin, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		e, ok := shape.UserData.(Entity)
		if !ok {
			return
		}
		hits = append(hits, RayHit{Entity: e, Point: point, Distance: alpha * maxDistance})
	}, nil)

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Overlap returns the distinct entities whose shapes come within radius of center.
func (pw *PhysicsWorld) Overlap(center cp.Vector, radius float64) []Entity {
	if pw == nil || pw.space == nil || radius < 0 {
		return nil
	}
	seen := make(map[Entity]bool)
	var out []Entity
	pw.space.EachShape(func(shape *cp.Shape) {
		e, ok := shape.UserData.(Entity)
		if !ok || seen[e] {
			return
		}
		if shape.PointQuery(center).Distance > radius {
			return
		}
		seen[e] = true
		out = append(out, e)
	})
	return out
}
