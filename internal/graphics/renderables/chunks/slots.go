package chunks

import (
	"buildcraft/internal/graphics/gpu"
)

// slotAssigner hands out texture units for one batch, first come first
// served from unit 0. A texture keeps its unit until the next reset.
type slotAssigner struct {
	dev   gpu.Device
	max   int
	slots map[gpu.Texture]int
	next  int
}

func newSlotAssigner(dev gpu.Device, maxUnits int) *slotAssigner {
	return &slotAssigner{
		dev:   dev,
		max:   maxUnits,
		slots: make(map[gpu.Texture]int, maxUnits),
	}
}

// resolve returns the unit of tex, binding it to the next free unit if it
// has none yet. full reports that the last free unit was just taken and the
// batch has to be flushed before another texture can be assigned.
func (s *slotAssigner) resolve(tex gpu.Texture) (slot int, newlyBound, full bool) {
	if slot, ok := s.slots[tex]; ok {
		return slot, false, false
	}
	if s.next >= s.max {
		panic("chunks: texture slots exhausted without a flush")
	}
	slot = s.next
	s.dev.BindTexture(tex, slot)
	s.slots[tex] = slot
	s.next++
	return slot, true, s.next >= s.max
}

func (s *slotAssigner) reset() {
	clear(s.slots)
	s.next = 0
}

func (s *slotAssigner) used() int {
	return s.next
}
