package zone

import "mtg-engine/internal/ids"

// Reference names an object either concretely (a zone id and an object id
// already known to live there) or abstractly (a zone id plus a Location
// that must be resolved against that zone's current ordering at apply
// time).
type Reference struct {
	Zone ids.ZoneID

	// Object is set when the object is already known; Abstract carries a
	// Location to resolve instead. Exactly one of the two is meaningful,
	// selected by IsAbstract.
	Object     ids.ObjectID
	Abstract   AbstractLocation
	IsAbstract bool
}

// ConcreteReference builds a Reference to an already-known object.
func ConcreteReference(z ids.ZoneID, obj ids.ObjectID) Reference {
	return Reference{Zone: z, Object: obj}
}

// AbstractReference builds a Reference that resolves loc against zone z
// at apply time.
func AbstractReference(z ids.ZoneID, loc AbstractLocation) Reference {
	return Reference{Zone: z, Abstract: loc, IsAbstract: true}
}

// Resolve looks up the object this reference names in the given zone
// lookup function, resolving abstract locations against the zone's
// current ordering. Returns false if the reference cannot be resolved
// (the zone is missing, a concrete object is not in the zone, or an
// abstract location is out of range).
func (r Reference) Resolve(lookup func(ids.ZoneID) (*Zone, bool)) (ids.ZoneID, ids.ObjectID, bool) {
	z, ok := lookup(r.Zone)
	if !ok {
		return r.Zone, ids.ObjectID{}, false
	}

	if !r.IsAbstract {
		if _, ok := z.Get(r.Object); !ok {
			return r.Zone, ids.ObjectID{}, false
		}
		return r.Zone, r.Object, true
	}

	obj, ok := z.ResolveAbstractLocation(r.Abstract)
	if !ok {
		return r.Zone, ids.ObjectID{}, false
	}
	return r.Zone, obj, true
}

// Destination names where to insert an object: a zone and where within
// it.
type Destination struct {
	Zone ids.ZoneID
	Loc  AbstractLocation
}
