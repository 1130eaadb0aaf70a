package testutils

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// FixedRoller always rolls the same face, clamped to the die size. A face of
// 1 makes every weighted draw pick the first entry.
type FixedRoller struct {
	Face int
}

// Roll implements dice.Roller
func (r *FixedRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("invalid die size: %d", size)
	}
	switch {
	case r.Face < 1:
		return 1, nil
	case r.Face > size:
		return size, nil
	default:
		return r.Face, nil
	}
}

// RollN implements dice.Roller
func (r *FixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SequenceRoller replays Faces in order and wraps around. Faces larger than
// the die are clamped.
type SequenceRoller struct {
	Faces []int
	next  int
	Calls []int
}

// Roll implements dice.Roller
func (r *SequenceRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("invalid die size: %d", size)
	}
	r.Calls = append(r.Calls, size)
	if len(r.Faces) == 0 {
		return 1, nil
	}
	face := r.Faces[r.next%len(r.Faces)]
	r.next++
	if face > size {
		face = size
	}
	if face < 1 {
		face = 1
	}
	return face, nil
}

// RollN implements dice.Roller
func (r *SequenceRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

var (
	_ toolkitdice.Roller = (*FixedRoller)(nil)
	_ toolkitdice.Roller = (*SequenceRoller)(nil)
)
