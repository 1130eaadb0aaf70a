package resolver

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/tables"
)

// augment applies one special material per pending sentinel tag. Bonuses
// are added as they are drawn; only the last multiplier drawn is applied,
// after every bonus, and the result is floored.
func (r *resolver) augment(ctx context.Context, state loot.State) (loot.State, error) {
	if len(state.PendingMaterials) == 0 {
		return state, nil
	}

	out, err := r.tableRepo.Get(ctx, tables.GetInput{Name: r.materialsTable})
	if err != nil {
		return state, errors.Wrapf(err, "failed to load materials table %s", r.materialsTable)
	}

	compatible := compatibleMaterials(out.Entries, state.TerminalTable)
	if len(compatible) == 0 {
		slog.Debug("no special material applies",
			"terminal_table", state.TerminalTable,
			"materials_table", r.materialsTable)
		return state.ClearPending(), nil
	}

	var multiplier float64
	for range state.PendingMaterials {
		material, err := r.picker.Pick(compatible, nil)
		if err != nil {
			return state, errors.Wrapf(err, "failed to draw a material for %s", state.TerminalTable)
		}

		effect, _ := material.EffectFor(state.TerminalTable)
		state = state.WithMaterial(material.Name)
		if effect.IsMultiplier() {
			multiplier = effect.Multiplier
			continue
		}
		state = state.AddValue(effect.Bonus)
	}

	if multiplier != 0 {
		state = state.Scale(multiplier)
	}

	return state.ClearPending(), nil
}

func compatibleMaterials(entries []loot.Entry, terminal string) []loot.Entry {
	out := make([]loot.Entry, 0, len(entries))
	for i := range entries {
		if _, ok := entries[i].EffectFor(terminal); ok {
			out = append(out, entries[i])
		}
	}
	return out
}
