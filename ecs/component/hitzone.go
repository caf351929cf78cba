package component

type HitZoneKind string

const (
	HitZoneHead HitZoneKind = "head"
	HitZoneBody HitZoneKind = "body"
)

// HitZone is a damage-receiving sub-region of an enemy body.
type HitZone struct {
	Zone       HitZoneKind
	Multiplier float64
}

var HitZoneComponent = NewComponent[HitZone]()
