package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/component"
	"github.com/milk9111/survival/prefabs"
	"github.com/milk9111/survival/survival"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit    = 24.0
	tickDelta        = 1.0 / 60.0
	healCostPerPoint = 2
)

type Game struct {
	frames int
	debug  bool

	logger     *slog.Logger
	controller *survival.Controller
	content    *prefabs.Content
	watcher    *prefabs.Watcher
}

func NewGame(controller *survival.Controller, content *prefabs.Content, watcher *prefabs.Watcher, logger *slog.Logger, debug bool) *Game {
	controller.StartSession()
	return &Game{
		debug:      debug,
		logger:     logger,
		controller: controller,
		content:    content,
		watcher:    watcher,
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	c := g.controller
	if _, ready := c.Transition(); ready {
		c.StartSession()
		return nil
	}

	if c.ShopOpen() {
		g.updateShop()
		c.SetInput(component.Input{})
	} else {
		px, py := g.playerScreen()
		c.SetInput(pollInput(px, py))
	}

	c.Tick(tickDelta)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		content, err := prefabs.LoadContent()
		if err != nil {
			g.logger.Warn("content reload failed", "file", name, "err", err)
			return
		}
		g.content = content
		g.controller.ReloadContent(content)
		g.logger.Info("content reloaded", "file", name)
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("content watcher", "err", err)
		}
	default:
	}
}

// updateShop maps digits to buy-or-equip (shift+digit sells), H to heal,
// B to refill ammo and Escape to close.
func (g *Game) updateShop() {
	c := g.controller
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.CloseShop()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		c.HealMissingHealth(healCostPerPoint)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		c.BuyAmmoForEquipped()
	}

	i, ok := offerKey()
	offers := c.Offers()
	if !ok || i >= len(offers) {
		return
	}
	name := offers[i].Name
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyShift):
		c.SellWeapon(name)
	case g.owns(name):
		c.EquipWeapon(name)
	default:
		c.BuyWeapon(name)
	}
}

func (g *Game) owns(name string) bool {
	for _, owned := range g.controller.OwnedWeapons() {
		if owned == name {
			return true
		}
	}
	return false
}

func (g *Game) playerPos() (float64, float64) {
	tr, ok := ecs.Get(g.controller.World(), g.controller.Player(), component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return tr.X, tr.Y
}

func (g *Game) playerScreen() (float64, float64) {
	return baseWidth / 2, baseHeight / 2
}

// toScreen maps world units to screen pixels with the player centered.
func (g *Game) toScreen(x, y float64) (float32, float32) {
	px, py := g.playerPos()
	return float32((x-px)*pixelsPerUnit + baseWidth/2), float32((y-py)*pixelsPerUnit + baseHeight/2)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	w := g.controller.World()
	if w != nil {
		g.drawCrate(screen, w)
		g.drawEnemies(screen, w)
		g.drawProjectiles(screen, w)
		g.drawPlayer(screen)
		if g.debug {
			g.drawLastHit(screen)
		}
	}

	g.drawHUD(screen)
	if g.controller.ShopOpen() {
		g.drawShop(screen)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	x, y := g.toScreen(g.playerPos())
	vector.DrawFilledCircle(screen, x, y, 0.5*pixelsPerUnit, colornames.Crimson, true)
}

func (g *Game) drawEnemies(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, tr *component.Transform) {
		radius := 0.5
		var clr color.Color = colornames.Olivedrab
		if arch, ok := g.content.Archetype(enemy.Archetype); ok {
			if arch.Radius > 0 {
				radius = arch.Radius
			}
			if arch.Color != nil {
				clr = arch.Color.Color
			}
		}
		faded := color.NRGBAModel.Convert(clr).(color.NRGBA)
		faded.A = uint8(float64(faded.A) * clamp01(enemy.Opacity))

		x, y := g.toScreen(tr.X, tr.Y)
		vector.DrawFilledCircle(screen, x, y, float32(radius*pixelsPerUnit), faded, true)
		if enemy.State == component.EnemyAttacking {
			vector.StrokeCircle(screen, x, y, float32(radius*pixelsPerUnit)+3, 2, colornames.Orangered, true)
		}
	})
}

func (g *Game) drawProjectiles(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Projectile, tr *component.Transform) {
		clr := colornames.Gold
		if p.TargetsPlayer {
			clr = colornames.Magenta
		}
		x, y := g.toScreen(tr.X, tr.Y)
		vector.DrawFilledCircle(screen, x, y, 4, clr, true)
	})
}

func (g *Game) drawCrate(screen *ebiten.Image, w *ecs.World) {
	tr, ok := ecs.Get(w, g.controller.Crate(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	x, y := g.toScreen(tr.X, tr.Y)
	size := float32(pixelsPerUnit)
	vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, colornames.Goldenrod, false)
}

func (g *Game) drawLastHit(screen *ebiten.Image) {
	hit := g.controller.LastHit()
	if !hit.Hit {
		return
	}
	px, py := g.toScreen(g.playerPos())
	hx, hy := g.toScreen(hit.Point.X, hit.Point.Y)
	vector.StrokeLine(screen, px, py, hx, hy, 1, colornames.Yellow, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("hit %v dmg=%.1f dist=%.2f head=%t", hit.Target, hit.Damage, hit.Distance, hit.Headshot), 10, baseHeight-20)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	c := g.controller

	ebitenutil.DebugPrintAt(screen, c.WaveLabel(), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Coins: %d", c.Coins()), 10, 26)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %s", c.EquippedWeapon(), c.AmmoText()), 10, 42)

	barW := 200.0
	ebitenutil.DrawRect(screen, 10, 60, barW, 10, colornames.Dimgray)
	ebitenutil.DrawRect(screen, 10, 60, barW*clamp01(c.HealthFraction()), 10, colornames.Limegreen)

	if text := c.IntermissionText(); text != "" {
		ebitenutil.DebugPrintAt(screen, text, baseWidth/2-60, 10)
	}
	if text := c.Objective(); text != "" {
		ebitenutil.DebugPrintAt(screen, text, baseWidth/2-100, 30)
	}
	if text := c.CratePrompt(); text != "" {
		ebitenutil.DebugPrintAt(screen, text, baseWidth/2-80, baseHeight/2+40)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  phase=%s  alive=%d", ebiten.ActualFPS(), c.Phase(), c.AliveEnemies()), baseWidth-320, 10)
	}
}

func (g *Game) drawShop(screen *ebiten.Image) {
	c := g.controller
	x, y := 400.0, 160.0
	ebitenutil.DrawRect(screen, x-10, y-10, 480, 320, color.NRGBA{A: 200})
	ebitenutil.DebugPrintAt(screen, "SUPPLY CRATE  [1-9] buy/equip  [shift] sell  [H] heal  [B] ammo  [Esc] close", int(x), int(y))
	for i, offer := range c.Offers() {
		if i >= len(offerKeys) {
			break
		}
		mark := " "
		switch {
		case offer.Name == c.EquippedWeapon():
			mark = "*"
		case g.owns(offer.Name):
			mark = "+"
		}
		line := fmt.Sprintf("%d %s %-10s %-8s %4d", i+1, mark, offer.Name, offer.Category, offer.Cost)
		ebitenutil.DebugPrintAt(screen, line, int(x), int(y)+24+16*i)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
