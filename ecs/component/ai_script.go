package component

// AIScript binds a tengo script to an entity's scripted special. Vars persist
// between invocations.
type AIScript struct {
	Name string
	Vars map[string]any
}

var AIScriptComponent = NewComponent[AIScript]()
