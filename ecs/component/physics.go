package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body that drives an entity. Child entities
// (hit zones, hitboxes) reference their parent's body.
type PhysicsBody struct {
	Body   *cp.Body
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
