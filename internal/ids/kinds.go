package ids

// Kind markers, one per identifier space named in the data model. Each is
// an uninhabited type used only to parameterize ID/Allocator.
type (
	PlayerKind   struct{}
	ObserverKind struct{}
	ActionKind   struct{}
	ObjectKind   struct{}
	ZoneKind     struct{}
	AbilityKind  struct{}
)

// Concrete identifier types, one per entity kind.
type (
	PlayerID   = ID[PlayerKind]
	ObserverID = ID[ObserverKind]
	ActionID   = ID[ActionKind]
	ObjectID   = ID[ObjectKind]
	ZoneID     = ID[ZoneKind]
	AbilityID  = ID[AbilityKind]
)

// Allocators, one per entity kind.
type (
	PlayerAllocator   = Allocator[PlayerKind]
	ObserverAllocator = Allocator[ObserverKind]
	ActionAllocator   = Allocator[ActionKind]
	ObjectAllocator   = Allocator[ObjectKind]
	ZoneAllocator     = Allocator[ZoneKind]
	AbilityAllocator  = Allocator[AbilityKind]
)

// NewPlayerAllocator returns a ready-to-use PlayerID allocator.
func NewPlayerAllocator() *PlayerAllocator { return NewAllocator[PlayerKind]() }

// NewObserverAllocator returns a ready-to-use ObserverID allocator.
func NewObserverAllocator() *ObserverAllocator { return NewAllocator[ObserverKind]() }

// NewActionAllocator returns a ready-to-use ActionID allocator.
func NewActionAllocator() *ActionAllocator { return NewAllocator[ActionKind]() }

// NewObjectAllocator returns a ready-to-use ObjectID allocator.
func NewObjectAllocator() *ObjectAllocator { return NewAllocator[ObjectKind]() }

// NewZoneAllocator returns a ready-to-use ZoneID allocator.
func NewZoneAllocator() *ZoneAllocator { return NewAllocator[ZoneKind]() }

// NewAbilityAllocator returns a ready-to-use AbilityID allocator.
func NewAbilityAllocator() *AbilityAllocator { return NewAllocator[AbilityKind]() }
