package survival

import (
	"slices"

	"github.com/milk9111/survival/ecs"
	"github.com/milk9111/survival/ecs/entity"
	"github.com/milk9111/survival/ecs/system"
	"github.com/milk9111/survival/prefabs"
)

func (c *Controller) Offers() []prefabs.OfferSpec {
	return slices.Clone(c.content.Offers)
}

func (c *Controller) owns(name string) bool {
	return slices.Contains(c.owned, name)
}

func (c *Controller) protected(name string) bool {
	return slices.Contains(c.rules.StarterWeapons, name)
}

func (c *Controller) sellValue(offer prefabs.OfferSpec) int {
	if offer.SellValue != nil {
		return max(0, *offer.SellValue)
	}
	return c.rules.DefaultSellValue
}

// BuyWeapon charges the offer's cost for an unowned weapon and equips it.
// Buying a weapon already owned just equips it.
func (c *Controller) BuyWeapon(name string) bool {
	offer, ok := c.content.Offer(name)
	if !ok {
		return false
	}
	if _, ok := c.content.Weapon(name); !ok {
		c.logger.Warn("survival: offer without weapon row", "weapon", name)
		return false
	}
	if c.owns(name) {
		return c.EquipWeapon(name)
	}
	if !c.TrySpendCoins(offer.Cost) {
		return false
	}
	c.owned = append(c.owned, name)
	c.logger.Info("survival: weapon bought", "weapon", name, "cost", offer.Cost)
	return c.EquipWeapon(name)
}

// SellWeapon refunds the sell value. Starter weapons cannot be sold. Selling
// the equipped weapon falls back to the first weapon still owned.
func (c *Controller) SellWeapon(name string) bool {
	if c.protected(name) {
		return false
	}
	offer, ok := c.content.Offer(name)
	if !ok || !c.owns(name) {
		return false
	}

	c.owned = slices.DeleteFunc(c.owned, func(owned string) bool { return owned == name })
	c.AddCoins(c.sellValue(offer))
	c.notify(ChangeLoadout, c.equipped, float64(len(c.owned)))

	if c.equipped == name {
		fallback := c.rules.DefaultWeapon
		if len(c.owned) > 0 {
			fallback = c.owned[0]
		}
		c.equipped = ""
		c.EquipWeapon(fallback)
	}
	return true
}

// EquipWeapon makes an owned weapon active on the player. Ammo for a weapon
// is seeded once per session and kept across swaps.
func (c *Controller) EquipWeapon(name string) bool {
	spec, ok := c.content.Weapon(name)
	if !ok || !c.owns(name) {
		return false
	}
	c.equipped = name
	if wpn, ok := c.playerWeapon(); ok {
		system.OnWeaponEquipped(c.world, wpn, entity.WeaponConfig(spec))
	}
	c.notify(ChangeLoadout, name, float64(len(c.owned)))
	c.notify(ChangeAmmo, c.AmmoText(), 0)
	return true
}

// AmmoCost prices missing rounds for the named weapon. Every round costs at
// least one coin.
func (c *Controller) AmmoCost(name string, missingMag, missingReserve int) (int, bool) {
	offer, ok := c.content.Offer(name)
	if !ok {
		return 0, false
	}
	return max(0, missingMag+missingReserve) * max(1, offer.AmmoCostPerUnit), true
}

// TryBuyAmmo pays for the missing rounds and refills the weapon completely.
func (c *Controller) TryBuyAmmo(name string, missingMag, missingReserve int) bool {
	spec, ok := c.content.Weapon(name)
	if !ok || !spec.Fires() {
		return false
	}
	cost, ok := c.AmmoCost(name, missingMag, missingReserve)
	if !ok {
		return false
	}
	wpn, ok := c.playerWeapon()
	if !ok {
		return false
	}
	if !c.TrySpendCoins(cost) {
		return false
	}
	system.Refill(c.world, wpn, entity.WeaponConfig(spec))
	if name == c.equipped {
		c.notify(ChangeAmmo, c.AmmoText(), 0)
	}
	return true
}

// BuyAmmoForEquipped tops up the equipped weapon.
func (c *Controller) BuyAmmoForEquipped() bool {
	spec, ok := c.content.Weapon(c.equipped)
	if !ok {
		return false
	}
	wpn, ok := c.playerWeapon()
	if !ok {
		return false
	}
	mag, reserve := system.MissingAmmo(wpn, entity.WeaponConfig(spec))
	if mag+reserve == 0 {
		return false
	}
	return c.TryBuyAmmo(c.equipped, mag, reserve)
}

// OpenShop is called when a supply crate completes its hold. Only one shop
// can be open at a time.
func (c *Controller) OpenShop(crate ecs.Entity) {
	if c.shopOpen || c.session.Ended() {
		return
	}
	c.shopOpen = true
	c.crate = crate
	c.showObjective(objectiveCrateOpened)
	c.notify(ChangeShop, "open", 1)
}

// CloseShop hides the shop and re-arms the crate that opened it.
func (c *Controller) CloseShop() {
	if !c.shopOpen {
		return
	}
	c.shopOpen = false
	if c.crate != 0 {
		system.RearmCrate(c.world, c.crate)
	}
	c.notify(ChangeShop, "", 0)
}
