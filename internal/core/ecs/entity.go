package ecs

// HighID tags what kind of object an EntityID refers to. It occupies the top
// 16 bits, the way the client expects object GUIDs to be typed.
type HighID uint16

const (
	HighNone          HighID = 0x0000
	HighPlayer        HighID = 0x0001
	HighItem          HighID = 0x4000
	HighDynamicObject HighID = 0xF100
	HighGameObject    HighID = 0xF110
	HighUnit          HighID = 0xF130
	HighPet           HighID = 0xF140
	HighVehicle       HighID = 0xF150
	HighCorpse        HighID = 0xF101
)

func (h HighID) String() string {
	switch h {
	case HighPlayer:
		return "Player"
	case HighItem:
		return "Item"
	case HighDynamicObject:
		return "DynamicObject"
	case HighGameObject:
		return "GameObject"
	case HighUnit:
		return "Unit"
	case HighPet:
		return "Pet"
	case HighVehicle:
		return "Vehicle"
	case HighCorpse:
		return "Corpse"
	}
	return "None"
}

// EntityID layout: high type (16) | generation (16) | index (32).
// Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(high HighID, index uint32, generation uint16) EntityID {
	return EntityID(uint64(high)<<48 | uint64(generation)<<32 | uint64(index))
}

// EntityIDFromParts rebuilds an id from the two 32-bit field slots.
func EntityIDFromParts(low, high uint32) EntityID {
	return EntityID(uint64(high)<<32 | uint64(low))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint16 { return uint16(id >> 32) }
func (id EntityID) High() HighID       { return HighID(id >> 48) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Low and High32 are the values stored in the low and high field slots.
func (id EntityID) Low() uint32    { return uint32(id) }
func (id EntityID) High32() uint32 { return uint32(id >> 32) }

func (id EntityID) IsPlayer() bool { return id.High() == HighPlayer }
func (id EntityID) IsNPC() bool    { return id.High() == HighUnit || id.High() == HighVehicle }
func (id EntityID) IsPet() bool    { return id.High() == HighPet }

// EntityPool manages entity allocation with generational indices and a free list.
// Indices are shared across high types.
type EntityPool struct {
	generations []uint16
	highs       []HighID
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint16, 0, 1024),
		highs:       make([]HighID, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

// Create allocates an id. Index 0 is never handed out so that a zero
// EntityID always means "no object".
func (p *EntityPool) Create(high HighID) EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		p.highs[idx] = high
		return NewEntityID(high, idx, p.generations[idx])
	}
	if p.nextIndex == 0 {
		p.generations = append(p.generations, 0)
		p.highs = append(p.highs, HighNone)
		p.nextIndex = 1
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 0)
	p.highs = append(p.highs, high)
	return NewEntityID(high, idx, 0)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation() && p.highs[idx] == id.High()
}

func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return // already destroyed (stale reference)
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
