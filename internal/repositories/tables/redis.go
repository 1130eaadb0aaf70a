package tables

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-loot/internal/redis"
)

const (
	// Key pattern: loot_table:{name}
	tableKeyPrefix = "loot_table:"
	// tableIndexKey is a set of every stored table name
	tableIndexKey = "loot_tables"
)

// RedisConfig contains configuration for the Redis table repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a Redis-backed table store. Each table is stored as one
// JSON document.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

var _ Store = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, tableKeyPrefix+input.Name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("table %s not found", input.Name)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get table %s", input.Name)
	}

	entries, err := loot.DecodeTable([]byte(result))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode table %s", input.Name)
	}

	return &GetOutput{Name: input.Name, Entries: entries}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.SMembers(ctx, tableIndexKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list tables")
	}
	sort.Strings(names)

	return &ListOutput{Names: names}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	entries := input.Entries
	if entries == nil {
		entries = []loot.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal table %s", input.Name)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tableKeyPrefix+input.Name, data, 0)
	pipe.SAdd(ctx, tableIndexKey, input.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to save table %s", input.Name)
	}

	return &SaveOutput{Name: input.Name}, nil
}
