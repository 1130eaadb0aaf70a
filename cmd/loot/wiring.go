package main

import (
	"context"
	"time"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-loot/internal/config"
	"github.com/KirkDiggler/rpg-loot/internal/engine/dice"
	"github.com/KirkDiggler/rpg-loot/internal/engine/resolver"
	"github.com/KirkDiggler/rpg-loot/internal/engine/selection"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generator"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-loot/internal/redis"
	rollhistory "github.com/KirkDiggler/rpg-loot/internal/repositories/roll_history"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/tables"
)

const pingTimeout = 2 * time.Second

// deps are the wired components one command needs
type deps struct {
	tables    tables.Repository
	history   rollhistory.Repository
	generator generator.Service
	redis     redisclient.Client
}

func (d *deps) Close() error {
	if d.redis == nil {
		return nil
	}
	return d.redis.Close()
}

type wiringOptions struct {
	// withHistory connects the roll history even when tables come from files
	withHistory bool
	roller      toolkitdice.Roller
}

func wire(ctx context.Context, cfg *config.Config, opts wiringOptions) (*deps, error) {
	d := &deps{}

	if cfg.TableSource == config.SourceRedis || opts.withHistory {
		client, err := connectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		d.redis = client
	}

	switch cfg.TableSource {
	case config.SourceRedis:
		store, err := tables.NewRedis(&tables.RedisConfig{Client: d.redis})
		if err != nil {
			return nil, err
		}
		d.tables = store
	default:
		repo, err := tables.NewFile(&tables.FileConfig{Dir: cfg.TablesDir})
		if err != nil {
			return nil, err
		}
		d.tables = repo
	}

	if d.redis != nil {
		history, err := rollhistory.NewRedisRepository(&rollhistory.Config{
			Client:      d.redis,
			Clock:       clock.New(),
			IDGenerator: idgen.NewUUID(idgen.PrefixRoll),
		})
		if err != nil {
			return nil, err
		}
		d.history = history
	}

	roller := opts.roller
	if roller == nil {
		roller = toolkitdice.DefaultRoller
	}

	evaluator, err := dice.NewEvaluator(&dice.Config{Roller: roller})
	if err != nil {
		return nil, err
	}
	rarity, err := selection.NewRaritySelector(&selection.RarityConfig{Roller: roller})
	if err != nil {
		return nil, err
	}
	picker, err := selection.NewPicker(&selection.PickerConfig{Roller: roller})
	if err != nil {
		return nil, err
	}

	res, err := resolver.New(&resolver.Config{
		TableRepo:      d.tables,
		Evaluator:      evaluator,
		Rarity:         rarity,
		Picker:         picker,
		MaterialsTable: cfg.MaterialsTable,
	})
	if err != nil {
		return nil, err
	}

	gen, err := generator.New(&generator.Config{
		Resolver:    res,
		IDGenerator: idgen.NewUUID(idgen.PrefixItem),
		HistoryRepo: d.history,
		HistoryTTL:  cfg.HistoryTTL,
	})
	if err != nil {
		return nil, err
	}
	d.generator = gen

	return d, nil
}

func connectRedis(ctx context.Context, addr string) (redisclient.Client, error) {
	client, err := redisclient.NewClient(addr, &redisclient.Options{DialTimeout: pingTimeout})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "create redis client")
	}
	if err := redisclient.Ping(ctx, client, pingTimeout); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %s is not reachable", addr)
	}
	return client, nil
}
