package action

import (
	"mtg-engine/internal/state"
	"mtg-engine/internal/zone"
)

// ChangeObjectZone is the one domain action that moves an object between
// zones: resolve Source to a concrete object in its zone, remove it, and
// insert it at Destination. Silently no-ops if Source resolves to
// nothing (e.g. an abstract location out of range, or the source zone
// itself missing) or if the destination zone is missing — removal and
// insertion happen together, so a half-moved object is never observable
// between the two.
type ChangeObjectZone struct {
	Source      zone.Reference
	Destination zone.Destination
}

func (a ChangeObjectZone) Apply(s *state.GameState) {
	zoneID, objID, ok := a.Source.Resolve(s.Zone)
	if !ok {
		return
	}

	srcZone, ok := s.Zone(zoneID)
	if !ok {
		return
	}
	dstZone, ok := s.Zone(a.Destination.Zone)
	if !ok {
		return
	}

	obj, ok := srcZone.Remove(objID)
	if !ok {
		return
	}
	dstZone.Insert(obj, a.Destination.Loc)
}
