// Package generator turns generation settings into loot by repeatedly
// drawing from the table resolver and rejecting draws that break the budget.
package generator

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/KirkDiggler/rpg-loot/internal/engine/resolver"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
	rollhistory "github.com/KirkDiggler/rpg-loot/internal/repositories/roll_history"
)

// Attempt ceilings and the output cap
const (
	DefaultSingleAttemptLimit    = 100
	DefaultAggregateAttemptLimit = 1000
	DefaultOutputCap             = 100
)

const reasonExhausted = "could not generate a valid result"

// Service generates loot
type Service interface {
	// Generate produces the requested loot. Slots that cannot be filled are
	// reported in Failures; they are not errors.
	// Returns errors.InvalidArgument for invalid settings
	// Returns errors.NotFound if a table is missing
	// Returns errors.CycleOrTooDeep for runaway table references
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// GetRoll returns a previously saved generation
	GetRoll(ctx context.Context, input *GetRollInput) (*GetRollOutput, error)

	// DeleteRoll removes a saved generation
	// Returns errors.NotFound if nothing was stored under the ID
	DeleteRoll(ctx context.Context, input *DeleteRollInput) (*DeleteRollOutput, error)
}

// Config holds the dependencies for the generator
type Config struct {
	Resolver    resolver.Service
	IDGenerator idgen.Generator

	// HistoryRepo is optional; without it Save and GetRoll fail
	HistoryRepo rollhistory.Repository
	HistoryTTL  time.Duration

	SingleAttemptLimit    int
	AggregateAttemptLimit int
	OutputCap             int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SingleAttemptLimit < 0 {
		vb.InvalidField("SingleAttemptLimit", "must not be negative")
	}
	if c.AggregateAttemptLimit < 0 {
		vb.InvalidField("AggregateAttemptLimit", "must not be negative")
	}
	if c.OutputCap < 0 {
		vb.InvalidField("OutputCap", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	resolver    resolver.Service
	idGen       idgen.Generator
	historyRepo rollhistory.Repository
	historyTTL  time.Duration

	singleAttempts    int
	aggregateAttempts int
	outputCap         int
}

// New creates a loot generator
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		resolver:          cfg.Resolver,
		idGen:             cfg.IDGenerator,
		historyRepo:       cfg.HistoryRepo,
		historyTTL:        cfg.HistoryTTL,
		singleAttempts:    orDefault(cfg.SingleAttemptLimit, DefaultSingleAttemptLimit),
		aggregateAttempts: orDefault(cfg.AggregateAttemptLimit, DefaultAggregateAttemptLimit),
		outputCap:         orDefault(cfg.OutputCap, DefaultOutputCap),
	}, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// batch accumulates accepted rolls across result sets
type batch struct {
	out      *GenerateOutput
	setIndex int
}

func (b *batch) accept(items []loot.Item, total float64) {
	b.setIndex++
	for _, item := range items {
		b.out.Rolls = append(b.out.Rolls, loot.Roll{SetIndex: b.setIndex, Item: item})
	}
	b.out.Total += total
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	settings := *input.Settings

	b := &batch{out: &GenerateOutput{Rolls: []loot.Roll{}}}

	var err error
	if settings.HasBudget() {
		err = o.generateWithBudget(ctx, &settings, b)
	} else {
		err = o.generateSingles(ctx, &settings, b)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("generated loot",
		"origin_table", settings.OriginTable,
		"items", len(b.out.Rolls),
		"sets", b.setIndex,
		"failures", len(b.out.Failures),
		"total", b.out.Total)

	if input.Save {
		id, err := o.save(ctx, &settings, b.out)
		if err != nil {
			return nil, err
		}
		b.out.HistoryID = id
	}

	return b.out, nil
}

// generateSingles fills one result set per requested item, each from a single
// accepted draw
func (o *orchestrator) generateSingles(ctx context.Context, settings *loot.Settings, b *batch) error {
	slots := settings.ResultCount
	if slots > o.outputCap {
		slog.Warn("result count capped",
			"requested", settings.ResultCount,
			"cap", o.outputCap)
		slots = o.outputCap
	}

	for slot := 1; slot <= slots; slot++ {
		result, attempts, err := o.draw(ctx, settings, nil, o.singleAttempts)
		if err != nil {
			return err
		}
		if result == nil {
			o.fail(b, slot, attempts)
			continue
		}
		b.accept(o.assignIDs(result.Items), result.Total)
	}

	return nil
}

// generateWithBudget builds one aggregate result set whose total stays within
// the budget. Accepted rolls are kept when the attempt ceiling is reached.
func (o *orchestrator) generateWithBudget(ctx context.Context, settings *loot.Settings, b *batch) error {
	remaining := *settings.MaxValue
	target := settings.ResultCount
	if settings.FillBudget || target > o.outputCap {
		target = o.outputCap
	}

	added, attempts := 0, 0
	for added < target && remaining > 0 && attempts < o.aggregateAttempts {
		result, used, err := o.draw(ctx, settings, &remaining, o.aggregateAttempts-attempts)
		attempts += used
		if err != nil {
			return err
		}
		if result == nil {
			break
		}
		if added+len(result.Items) > o.outputCap {
			slog.Debug("draw would pass the output cap",
				"items", len(result.Items),
				"added", added)
			continue
		}

		b.accept(o.assignIDs(result.Items), result.Total)
		added += len(result.Items)
		remaining -= result.Total
	}

	switch {
	case added == 0:
		o.fail(b, 1, attempts)
	case added < target && !settings.FillBudget && remaining > 0:
		slog.Warn("budget set is short of the requested count",
			"requested", target,
			"added", added,
			"attempts", attempts,
			"remaining_budget", remaining)
	}

	return nil
}

// draw resolves the origin table until a draw is accepted or limit attempts
// are spent. A nil result means every attempt was rejected.
func (o *orchestrator) draw(ctx context.Context, settings *loot.Settings, budget *float64, limit int) (*loot.Result, int, error) {
	for attempt := 1; attempt <= limit; attempt++ {
		out, err := o.resolver.Resolve(ctx, &resolver.ResolveInput{
			Table:    settings.OriginTable,
			Settings: settings,
			Budget:   budget,
		})
		if err != nil {
			return nil, attempt, errors.Wrapf(err, "failed to resolve %s", settings.OriginTable)
		}

		if accepted(out.Result, budget) {
			return out.Result, attempt, nil
		}

		slog.Debug("rerolling",
			"origin_table", settings.OriginTable,
			"attempt", attempt,
			"exceeded", out.Result.Exceeded)
	}

	return nil, limit, nil
}

// accepted reports whether a draw produced items within the budget. A draw
// never gives budget back, so negative or non-finite values are rejected.
func accepted(result *loot.Result, budget *float64) bool {
	if result == nil || result.Exceeded || len(result.Items) == 0 {
		return false
	}
	if !validValue(result.Total) {
		return false
	}
	for _, item := range result.Items {
		if !validValue(item.Value) {
			return false
		}
	}
	return budget == nil || result.Total <= *budget
}

func validValue(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func (o *orchestrator) assignIDs(items []loot.Item) []loot.Item {
	out := make([]loot.Item, len(items))
	for i, item := range items {
		item.ID = o.idGen.Generate()
		out[i] = item
	}
	return out
}

func (o *orchestrator) fail(b *batch, slot, attempts int) {
	slog.Warn(reasonExhausted,
		"slot", slot,
		"attempts", attempts)

	b.out.Failures = append(b.out.Failures, loot.Failure{
		Slot:     slot,
		Attempts: attempts,
		Reason:   reasonExhausted,
	})
}

func (o *orchestrator) save(ctx context.Context, settings *loot.Settings, out *GenerateOutput) (string, error) {
	if o.historyRepo == nil {
		return "", errors.FailedPrecondition("roll history is not configured")
	}

	created, err := o.historyRepo.Create(ctx, rollhistory.CreateInput{
		Settings: *settings,
		Rolls:    out.Rolls,
		Failures: out.Failures,
		Total:    out.Total,
		TTL:      o.historyTTL,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to save roll")
	}

	return created.Record.ID, nil
}

func (o *orchestrator) GetRoll(ctx context.Context, input *GetRollInput) (*GetRollOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("roll ID is required")
	}
	if o.historyRepo == nil {
		return nil, errors.FailedPrecondition("roll history is not configured")
	}

	out, err := o.historyRepo.Get(ctx, rollhistory.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get roll %s", input.ID)
	}

	return &GetRollOutput{Record: out.Record}, nil
}

func (o *orchestrator) DeleteRoll(ctx context.Context, input *DeleteRollInput) (*DeleteRollOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("roll ID is required")
	}
	if o.historyRepo == nil {
		return nil, errors.FailedPrecondition("roll history is not configured")
	}

	out, err := o.historyRepo.Delete(ctx, rollhistory.DeleteInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete roll %s", input.ID)
	}
	if !out.Deleted {
		return nil, errors.NotFoundf("roll %s not found", input.ID)
	}

	slog.Info("deleted roll", "roll_id", input.ID)
	return &DeleteRollOutput{ID: input.ID}, nil
}
