package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
)

// aiScriptRuntime is one entity's compiled special script. Scripts define
// onStart, onUpdate and onFinish, each called as f(engine, state).
type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	finished   bool
}

const aiSpecialDispatchScript = `
if __phase == "start" {
	onStart(__engine, __state)
} else if __phase == "update" {
	onUpdate(__engine, __state)
} else if __phase == "finish" {
	onFinish(__engine, __state)
}
`

// scriptContext is the view of the world a script call gets.
type scriptContext struct {
	world   *ecs.World
	entity  ecs.Entity
	enemy   *component.Enemy
	special *component.Special
	dt      float64
	system  *EnemyAISystem
}

// runScript executes one lifecycle phase. Errors end the special.
func (s *EnemyAISystem) runScript(w *ecs.World, e ecs.Entity, enemy *component.Enemy, sp *component.Special, phase string, dt float64) {
	rt, err := s.getScriptRuntime(e, sp.Config.Script)
	if err != nil {
		s.logger.Error("special script load failed", "entity", e.String(), "script", sp.Config.Script, "err", err)
		finishSpecial(enemy, sp)
		return
	}
	if phase == "start" {
		rt.finished = false
	}

	ctx := &scriptContext{world: w, entity: e, enemy: enemy, special: sp, dt: dt, system: s}
	if err := rt.runPhase(phase, buildAIScriptEngine(ctx, rt)); err != nil {
		s.logger.Error("special script failed", "entity", e.String(), "script", sp.Config.Script, "phase", phase, "err", err)
		finishSpecial(enemy, sp)
		return
	}

	if script, ok := ecs.Get(w, e, component.AIScriptComponent.Kind()); ok {
		if vars, ok := objectToAny(rt.stateData).(map[string]any); ok {
			script.Vars = vars
		}
	}

	if rt.finished && phase != "finish" {
		if err := rt.runPhase("finish", buildAIScriptEngine(ctx, rt)); err != nil {
			s.logger.Error("special script failed", "entity", e.String(), "script", sp.Config.Script, "phase", "finish", "err", err)
		}
		finishSpecial(enemy, sp)
	}
}

func (s *EnemyAISystem) getScriptRuntime(ent ecs.Entity, path string) (*aiScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("special has no script")
	}
	if rt, ok := s.scripts[ent]; ok && rt != nil && rt.scriptPath == path {
		return rt, nil
	}

	scriptBytes, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + aiSpecialDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &aiScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.scripts[ent] = rt
	return rt, nil
}

func (rt *aiScriptRuntime) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildAIScriptEngine(ctx *scriptContext, rt *aiScriptRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.special.Elapsed}, nil
	}}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.dt}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos, _ := entityPosition(ctx.world, ctx.entity)
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: pos.X}, &tengo.Float{Value: pos.Y}}}, nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, pos, _ := playerPosition(ctx.world)
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: pos.X}, &tengo.Float{Value: pos.Y}}}, nil
	}}

	values["distance_to_player"] = &tengo.UserFunction{Name: "distance_to_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos, ok := entityPosition(ctx.world, ctx.entity)
		_, playerPos, playerOK := playerPosition(ctx.world)
		if !ok || !playerOK {
			return &tengo.Float{Value: -1}, nil
		}
		return &tengo.Float{Value: pos.Distance(playerPos)}, nil
	}}

	values["set_speed_scale"] = &tengo.UserFunction{Name: "set_speed_scale", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := objectAsFloat(args[0])
		if !ok || v < 0 {
			return tengo.FalseValue, nil
		}
		ctx.special.SpeedScale = v
		return tengo.TrueValue, nil
	}}

	values["set_opacity"] = &tengo.UserFunction{Name: "set_opacity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		ctx.enemy.Opacity = min(1, max(0, v))
		return tengo.TrueValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos, ok := entityPosition(ctx.world, ctx.entity)
		_, playerPos, playerOK := playerPosition(ctx.world)
		if !ok || !playerOK {
			return tengo.FalseValue, nil
		}
		ctx.system.fireAtPlayer(ctx.world, ctx.entity, ctx.special, pos, playerPos)
		return tengo.TrueValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.finished = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
