package loot_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

func TestDefaultSettings(t *testing.T) {
	s := loot.DefaultSettings()

	assert.Equal(t, "armor", s.OriginTable)
	assert.Equal(t, 1, s.ResultCount)
	assert.Nil(t, s.MaxValue)
	assert.Equal(t, 10.0, s.RareChance)
	assert.Equal(t, 20.0, s.UncommonChance)
	assert.False(t, s.FilterByMax)
	assert.Equal(t, loot.RarityPolicyExclusive, s.RarityPolicy)
	require.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(s *loot.Settings)
		wantErr string
	}{
		{
			name:    "missing origin",
			mutate:  func(s *loot.Settings) { s.OriginTable = " " },
			wantErr: "origin_table",
		},
		{
			name:    "zero count",
			mutate:  func(s *loot.Settings) { s.ResultCount = 0 },
			wantErr: "result_count",
		},
		{
			name: "chances over 100",
			mutate: func(s *loot.Settings) {
				s.RareChance = 60
				s.UncommonChance = 50
			},
			wantErr: "must not exceed 100",
		},
		{
			name:    "negative budget",
			mutate:  func(s *loot.Settings) { s.MaxValue = loot.Float(-1) },
			wantErr: "max_value",
		},
		{
			name:    "budget not a number",
			mutate:  func(s *loot.Settings) { s.MaxValue = loot.Float(math.NaN()) },
			wantErr: "max_value: must be a finite number",
		},
		{
			name:    "infinite budget",
			mutate:  func(s *loot.Settings) { s.MaxValue = loot.Float(math.Inf(1)) },
			wantErr: "max_value: must be a finite number",
		},
		{
			name:    "rare chance not a number",
			mutate:  func(s *loot.Settings) { s.RareChance = math.NaN() },
			wantErr: "rare_chance",
		},
		{
			name:    "uncommon chance not a number",
			mutate:  func(s *loot.Settings) { s.UncommonChance = math.NaN() },
			wantErr: "uncommon_chance",
		},
		{
			name:    "unknown policy",
			mutate:  func(s *loot.Settings) { s.RarityPolicy = "loose" },
			wantErr: "rarity_policy",
		},
		{
			name:    "filter without budget",
			mutate:  func(s *loot.Settings) { s.FilterByMax = true },
			wantErr: "filter_by_max",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := loot.DefaultSettings()
			tc.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
