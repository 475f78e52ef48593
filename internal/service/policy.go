package service

import "fmt"

// CapacityPolicy decides how many tables a booking occupies.
type CapacityPolicy interface {
	Name() string
	TablesNeeded(guests uint32) uint32
}

// SlotPolicy counts every booking as one table regardless of party size.
type SlotPolicy struct{}

func (SlotPolicy) Name() string { return "slot" }

func (SlotPolicy) TablesNeeded(uint32) uint32 { return 1 }

// SeatsPolicy seats at most SeatsPerTable guests per table.
type SeatsPolicy struct {
	SeatsPerTable uint32
}

func (SeatsPolicy) Name() string { return "seats" }

func (p SeatsPolicy) TablesNeeded(guests uint32) uint32 {
	per := p.SeatsPerTable
	if per == 0 {
		per = 1
	}
	if guests == 0 {
		return 1
	}
	// uint64 so that guests near MaxUint32 cannot wrap to zero tables.
	return uint32((uint64(guests) + uint64(per) - 1) / uint64(per))
}

// NewCapacityPolicy returns the policy registered under name.
func NewCapacityPolicy(name string, seatsPerTable int) (CapacityPolicy, error) {
	switch name {
	case "", "slot":
		return SlotPolicy{}, nil
	case "seats":
		if seatsPerTable < 1 {
			return nil, fmt.Errorf("seats per table must be positive, got %d", seatsPerTable)
		}
		return SeatsPolicy{SeatsPerTable: uint32(seatsPerTable)}, nil
	}
	return nil, fmt.Errorf("unknown capacity policy %q", name)
}

// remainingTables is total minus booked, floored at zero.
func remainingTables(total, booked uint32) uint32 {
	if booked >= total {
		return 0
	}
	return total - booked
}
