// Package resolver walks loot tables from an origin down to terminal items.
//
// A walk draws one entry per table. Table references are followed, set
// entries expand into several independently resolved items, and leaves end
// the walk. Budget and tier violations are not errors: they produce an
// exceeded result the caller is expected to reroll.
package resolver

//go:generate mockgen -destination=mock/mock_service.go -package=resolvermock github.com/KirkDiggler/rpg-loot/internal/engine/resolver Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-loot/internal/engine/dice"
	"github.com/KirkDiggler/rpg-loot/internal/engine/selection"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/tables"
)

const (
	// DefaultMaxDepth bounds the number of table hops in one walk
	DefaultMaxDepth = 64
	// DefaultMaterialsTable holds the special material rows
	DefaultMaterialsTable = "special_materials"
)

// Service resolves one draw from a table
type Service interface {
	// Resolve draws from input.Table and follows references until a leaf or
	// a set is produced.
	// Returns errors.NotFound if any table on the path does not exist
	// Returns errors.CycleOrTooDeep if the path is longer than the depth cap
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// ResolveInput is one resolution request
type ResolveInput struct {
	Table    string
	Settings *loot.Settings
	// Budget is the value still available to this draw; nil means unconstrained
	Budget *float64
	// State seeds the walk. The zero value starts a fresh walk.
	State loot.State
}

// ResolveOutput carries the result of one draw
type ResolveOutput struct {
	Result *loot.Result
}

// Config holds the dependencies for the resolver
type Config struct {
	TableRepo      tables.Repository
	Evaluator      dice.Evaluator
	Rarity         selection.RaritySelector
	Picker         selection.Picker
	MaterialsTable string
	MaxDepth       int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.TableRepo == nil {
		vb.RequiredField("TableRepo")
	}
	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}
	if c.Rarity == nil {
		vb.RequiredField("Rarity")
	}
	if c.Picker == nil {
		vb.RequiredField("Picker")
	}
	if c.MaxDepth < 0 {
		vb.InvalidField("MaxDepth", "must not be negative")
	}
	return vb.Build()
}

type resolver struct {
	tableRepo      tables.Repository
	evaluator      dice.Evaluator
	rarity         selection.RaritySelector
	picker         selection.Picker
	materialsTable string
	maxDepth       int
}

// New creates a table resolver
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	materials := cfg.MaterialsTable
	if materials == "" {
		materials = DefaultMaterialsTable
	}
	maxDepth := cfg.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	return &resolver{
		tableRepo:      cfg.TableRepo,
		evaluator:      cfg.Evaluator,
		rarity:         cfg.Rarity,
		picker:         cfg.Picker,
		materialsTable: materials,
		maxDepth:       maxDepth,
	}, nil
}

// walk holds what stays fixed for one Resolve call
type walk struct {
	settings *loot.Settings
	budget   *float64
}

func (r *resolver) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Table == "" {
		return nil, errors.InvalidArgument("table is required")
	}
	if input.Settings == nil {
		return nil, errors.InvalidArgument("settings are required")
	}

	w := &walk{settings: input.Settings, budget: input.Budget}

	result, err := r.resolveTable(ctx, w, input.Table, input.State)
	if err != nil {
		return nil, err
	}

	return &ResolveOutput{Result: result}, nil
}

func (r *resolver) resolveTable(ctx context.Context, w *walk, name string, state loot.State) (*loot.Result, error) {
	if state.Depth > r.maxDepth {
		return nil, errors.CycleOrTooDeepf("table %s is nested more than %d levels deep", name, r.maxDepth).
			WithMeta(errors.MetaBreadcrumb, state.Breadcrumb)
	}

	state = state.Visit(name)

	out, err := r.tableRepo.Get(ctx, tables.GetInput{Name: name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load table %s", name)
	}

	entries := out.Entries
	if state.Depth == 0 && w.settings.FilterByMax && w.settings.MaxValue != nil {
		entries = filterByMax(entries, *w.settings.MaxValue)
	}

	eligible, err := r.rarity.Select(w.settings.RareChance, w.settings.UncommonChance, w.settings.RarityPolicy)
	if err != nil {
		return nil, err
	}

	entry, err := r.picker.Pick(entries, eligible)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to draw from table %s", name).WithMeta("table", name)
	}

	slog.Debug("drew entry",
		"table", name,
		"entry", entry.Name,
		"kind", entry.Kind().String(),
		"depth", state.Depth)

	return r.resolveEntry(ctx, w, entry, state.WithTerminal(name))
}

func (r *resolver) resolveEntry(ctx context.Context, w *walk, entry *loot.Entry, state loot.State) (*loot.Result, error) {
	if r.belowMinimum(w, entry) {
		return loot.ExceededResult(), nil
	}

	switch entry.Kind() {
	case loot.KindSet:
		return r.expandSet(ctx, w, entry, state)
	case loot.KindTable:
		return r.followReference(ctx, w, entry, state)
	default:
		return r.resolveLeaf(ctx, w, entry, state)
	}
}

// belowMinimum reports whether the entry's min_value cannot be afforded
func (r *resolver) belowMinimum(w *walk, entry *loot.Entry) bool {
	if !w.settings.GateMinValue || w.budget == nil || entry.MinValue == nil {
		return false
	}
	return *entry.MinValue > *w.budget
}

func (r *resolver) followReference(ctx context.Context, w *walk, entry *loot.Entry, state loot.State) (*loot.Result, error) {
	if entry.Name == "" {
		return nil, errors.InvalidArgumentf("table reference without a name in %s", state.TerminalTable).
			WithMeta(errors.MetaBreadcrumb, state.Breadcrumb)
	}

	state = state.WithModifiers(entry.Modifier)
	if len(entry.Modifier) > 0 {
		state = state.AddValue(r.evaluate(entry.Value))
	}
	if entry.MaxValue != nil {
		state = state.WithCeiling(*entry.MaxValue)
	}
	if r.exceeds(w, state) {
		return loot.ExceededResult(), nil
	}

	return r.resolveTable(ctx, w, entry.Name, state.WithTerminal(entry.Name).Descend())
}

func (r *resolver) resolveLeaf(ctx context.Context, w *walk, entry *loot.Entry, state loot.State) (*loot.Result, error) {
	var display *loot.DisplayQuantity
	if entry.DisplayValue != nil {
		qty := r.evaluate(entry.DisplayValue)
		unit := loot.ParseDisplayUnit(entry.DisplayUnit)
		display = &loot.DisplayQuantity{Amount: qty, Unit: unit}
		state = state.AddValue(unit.ToGold(qty))
	} else {
		state = state.AddValue(r.evaluate(entry.Value))
	}
	if entry.MaxValue != nil {
		state = state.WithCeiling(*entry.MaxValue)
	}

	state, err := r.augment(ctx, state)
	if err != nil {
		return nil, err
	}

	if r.exceeds(w, state) {
		return loot.ExceededResult(), nil
	}

	item := loot.Item{
		Name:          entry.Name,
		Breadcrumb:    state.Breadcrumb,
		Modifiers:     state.Modifiers,
		Value:         state.RunningValue,
		Rarity:        entry.EffectiveRarity(),
		TerminalTable: state.TerminalTable,
		Display:       display,
	}

	return &loot.Result{
		Items: []loot.Item{item},
		Total: state.RunningValue,
	}, nil
}

// expandSet resolves every member independently from a zero value. A single
// exceeded member, or an aggregate over the set's limit, rejects the set.
func (r *resolver) expandSet(ctx context.Context, w *walk, entry *loot.Entry, state loot.State) (*loot.Result, error) {
	out := &loot.Result{Items: []loot.Item{}, Set: true}

	for i := range entry.Items {
		member, err := r.resolveEntry(ctx, w, &entry.Items[i], state.ForMember())
		if err != nil {
			return nil, err
		}
		if member.Exceeded {
			return loot.ExceededResult(), nil
		}
		out.Items = append(out.Items, member.Items...)
		out.Total += member.Total
	}

	if entry.MaxValue != nil {
		limit := *entry.MaxValue
		if w.budget != nil && *w.budget > limit {
			limit = *w.budget
		}
		if out.Total > limit {
			return loot.ExceededResult(), nil
		}
	}

	return out, nil
}

// exceeds reports whether the running value broke the active ceiling or the
// remaining budget
func (r *resolver) exceeds(w *walk, state loot.State) bool {
	if state.OverCeiling() {
		return true
	}
	return w.budget != nil && state.RunningValue > *w.budget
}

func (r *resolver) evaluate(amount *loot.Amount) float64 {
	if amount == nil {
		return 0
	}
	return r.evaluator.Evaluate(*amount)
}

// filterByMax keeps the entries whose max_value is the greatest one not above
// ceiling. Without such a tier the table is returned unchanged.
func filterByMax(entries []loot.Entry, ceiling float64) []loot.Entry {
	var best *float64
	for i := range entries {
		mv := entries[i].MaxValue
		if mv == nil || *mv > ceiling {
			continue
		}
		if best == nil || *mv > *best {
			best = mv
		}
	}
	if best == nil {
		return entries
	}

	tier := make([]loot.Entry, 0, len(entries))
	for i := range entries {
		if mv := entries[i].MaxValue; mv != nil && *mv == *best {
			tier = append(tier, entries[i])
		}
	}
	return tier
}
