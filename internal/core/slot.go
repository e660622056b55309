package core

// Slot is one of the four player colors handed out at join time.
type Slot int

const (
	SlotRed Slot = iota
	SlotBlue
	SlotGreen
	SlotYellow
)

// SlotCount is the size of the color set.
const SlotCount = 4

var slotNames = [SlotCount]string{"red", "blue", "green", "yellow"}

// SlotFor returns the slot for a room that currently holds count members.
// Slots cycle, so a fifth member shares a color with the first.
func SlotFor(count int) Slot {
	return Slot(count % SlotCount)
}

// String returns the color label sent on the wire.
func (s Slot) String() string {
	if s < 0 || int(s) >= SlotCount {
		return "unknown"
	}
	return slotNames[s]
}
