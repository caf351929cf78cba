package system

import (
	"fmt"
	"math"

	"github.com/milk9111/survival/common"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
)

const CratePromptMessage = "Hold E to buy supplies"

// SupplyCrateSystem runs the hold-to-open gate. Proximity uses a point query
// around the crate so the check respects the player's collision radius.
type SupplyCrateSystem struct{}

func NewSupplyCrateSystem() *SupplyCrateSystem {
	return &SupplyCrateSystem{}
}

func (s *SupplyCrateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	interact := input != nil && input.Interact
	dt := w.DeltaTime()

	ecs.ForEach(w, component.SupplyCrateComponent.Kind(), func(e ecs.Entity, crate *component.SupplyCrate) {
		if crate.Opened {
			return
		}

		crate.InRange = playerInRange(w, e, player, crate.Range)
		if !crate.InRange {
			crate.HoldTimer = 0
			setPrompt(w, e, crate, false, CratePromptMessage)
			return
		}

		if !interact {
			crate.HoldTimer = 0
			setPrompt(w, e, crate, true, CratePromptMessage)
			return
		}

		crate.HoldTimer += dt
		setPrompt(w, e, crate, true, CratePromptText(crate.HoldTimer, crate.HoldDuration))
		if crate.HoldTimer >= crate.HoldDuration {
			crate.Opened = true
			crate.HoldTimer = 0
			setPrompt(w, e, crate, false, CratePromptMessage)
			pushEvent(w, ecs.EventCrateOpened, ecs.CrateOpened{Crate: e})
		}
	})
}

// CratePromptText renders the hold progress, e.g. "Hold E to buy supplies (40%)".
func CratePromptText(hold, duration float64) string {
	progress := common.Clamp01(hold / math.Max(0.1, duration))
	percent := int(math.RoundToEven(progress * 100))
	return fmt.Sprintf("%s (%d%%)", CratePromptMessage, percent)
}

// RearmCrate re-enables a crate after the shop closes. The prompt reappears on
// the next tick if the player is still in range.
func RearmCrate(w *ecs.World, e ecs.Entity) bool {
	crate, ok := ecs.Get(w, e, component.SupplyCrateComponent.Kind())
	if !ok {
		return false
	}
	crate.Opened = false
	crate.HoldTimer = 0
	setPrompt(w, e, crate, false, CratePromptMessage)
	return true
}

func playerInRange(w *ecs.World, crate, player ecs.Entity, rng float64) bool {
	pos, ok := entityPosition(w, crate)
	if !ok {
		return false
	}
	if pw := w.PhysicsWorld(); pw != nil {
		for _, hit := range pw.Overlap(pos, rng) {
			if hit == player {
				return true
			}
		}
		return false
	}
	playerPos, ok := entityPosition(w, player)
	return ok && pos.Distance(playerPos) <= rng
}

func setPrompt(w *ecs.World, e ecs.Entity, crate *component.SupplyCrate, visible bool, text string) {
	shown := ""
	if visible {
		shown = text
	}
	if crate.Prompt == shown {
		return
	}
	crate.Prompt = shown
	pushEvent(w, ecs.EventCratePrompt, ecs.CratePrompt{Crate: e, Visible: visible, Text: text})
}
