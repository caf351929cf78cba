package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/survival/ecs/component"
)

const gamepadDeadzone = 0.2

// pollInput samples keyboard, mouse and the first gamepad. The aim vector
// points from the player's screen position to the cursor unless the right
// stick is deflected.
func pollInput(playerX, playerY float64) component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.MoveY++
	}

	mx, my := ebiten.CursorPosition()
	in.AimX, in.AimY = float64(mx)-playerX, float64(my)-playerY

	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.Interact = ebiten.IsKeyPressed(ebiten.KeyE)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return in
	}
	id := ids[0]

	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(lx, ly) > gamepadDeadzone {
		in.MoveX, in.MoveY = lx, ly
	}
	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > gamepadDeadzone {
		in.AimX, in.AimY = rx, ry
	}

	in.Fire = in.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	in.ReloadPressed = in.ReloadPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	in.Interact = in.Interact || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)

	return in
}

var offerKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// offerKey returns the 0-based offer index for a just-pressed digit key.
func offerKey() (int, bool) {
	for i, key := range offerKeys {
		if inpututil.IsKeyJustPressed(key) {
			return i, true
		}
	}
	return 0, false
}
