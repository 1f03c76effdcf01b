package plans

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// NormalizeOrder returns the plans sorted by their order (nil counts as 0,
// ties keep the input order) with dense orders 0..N-1 assigned.
func NormalizeOrder(plans []Plan) []Plan {
	normalized := make([]Plan, len(plans))
	for i := range plans {
		normalized[i] = plans[i].Clone()
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].OrderValue() < normalized[j].OrderValue()
	})
	for i := range normalized {
		normalized[i].SetOrder(i)
	}

	return normalized
}

// Move moves the plans at sources as one block to destination, keeping their
// relative order. destination is a position in the list before the move
// (0..len(plans)). Every plan gets order = its new index; all of them need saving.
// Panics on out of range indices.
func Move(plans []Plan, sources []int, destination int) []Plan {
	if destination < 0 || destination > len(plans) {
		panic(fmt.Sprintf("move destination %d out of range [0, %d]", destination, len(plans)))
	}

	moving := make(map[int]bool, len(sources))
	for _, s := range sources {
		if s < 0 || s >= len(plans) {
			panic(fmt.Sprintf("move source %d out of range [0, %d)", s, len(plans)))
		}
		moving[s] = true
	}

	var block, rest []Plan
	insertAt := destination
	for i, p := range plans {
		if moving[i] {
			block = append(block, p.Clone())
			if i < destination {
				insertAt--
			}
			continue
		}
		rest = append(rest, p.Clone())
	}

	moved := make([]Plan, 0, len(plans))
	moved = append(moved, rest[:insertAt]...)
	moved = append(moved, block...)
	moved = append(moved, rest[insertAt:]...)

	for i := range moved {
		moved[i].SetOrder(i)
	}
	return moved
}

// Remove removes the plans at the given indices. Plans with an id are only
// removed once deleteFn confirmed the delete; plans never saved are just dropped.
// Failed deletes keep their plan in the returned list and are reported combined.
func Remove(plans []Plan, indices []int, deleteFn func(Plan) error) ([]Plan, error) {
	selected := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(plans) {
			return plans, fmt.Errorf("%w: plan index %d", ErrIndexOutOfRange, idx)
		}
		selected[idx] = true
	}

	var errs error
	remaining := make([]Plan, 0, len(plans))
	for i, p := range plans {
		if !selected[i] {
			remaining = append(remaining, p)
			continue
		}
		if p.ID == "" {
			continue
		}
		if err := deleteFn(p); err != nil && !errors.Is(err, ErrPlanNotFound) {
			errs = multierr.Append(errs, fmt.Errorf("delete plan %s: %w", p.ID, err))
			remaining = append(remaining, p)
		}
	}

	return remaining, errs
}
