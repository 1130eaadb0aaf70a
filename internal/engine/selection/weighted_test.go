package selection_test

import (
	"testing"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loot/internal/engine/selection"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/testutils"
)

type PickerTestSuite struct {
	suite.Suite
	roller *testutils.SequenceRoller
	picker selection.Picker
}

func TestPickerSuite(t *testing.T) {
	suite.Run(t, new(PickerTestSuite))
}

func (s *PickerTestSuite) SetupTest() {
	s.roller = &testutils.SequenceRoller{}
	p, err := selection.NewPicker(&selection.PickerConfig{Roller: s.roller})
	s.Require().NoError(err)
	s.picker = p
}

func (s *PickerTestSuite) TestIntervalBoundaries() {
	entries := []loot.Entry{
		{Name: "a", Weight: loot.Int(2)},
		{Name: "b", Weight: loot.Int(3)},
		{Name: "c"},
	}

	// faces 1..6 map to draws 0..5: a a b b b c
	s.roller.Faces = []int{1, 2, 3, 5, 6}
	expected := []string{"a", "a", "b", "b", "c"}

	for _, name := range expected {
		got, err := s.picker.Pick(entries, nil)
		s.Require().NoError(err)
		s.Equal(name, got.Name)
	}
	s.Equal([]int{6, 6, 6, 6, 6}, s.roller.Calls)
}

func (s *PickerTestSuite) TestZeroWeightNeverDrawn() {
	entries := []loot.Entry{
		{Name: "never", Weight: loot.Int(0)},
		{Name: "always", Weight: loot.Int(4)},
	}
	s.roller.Faces = []int{1, 4}

	for i := 0; i < 2; i++ {
		got, err := s.picker.Pick(entries, nil)
		s.Require().NoError(err)
		s.Equal("always", got.Name)
	}
}

func (s *PickerTestSuite) TestRarityFilter() {
	entries := []loot.Entry{
		{Name: "dagger"},
		{Name: "vorpal sword", Rarity: loot.RarityRare},
		{Items: []loot.Entry{{Name: "arrow"}}},
	}
	s.roller.Faces = []int{1, 2}

	eligible := selection.RaritySet{loot.RarityRare: true}

	got, err := s.picker.Pick(entries, eligible)
	s.Require().NoError(err)
	s.Equal("vorpal sword", got.Name)

	got, err = s.picker.Pick(entries, eligible)
	s.Require().NoError(err)
	s.Equal(loot.KindSet, got.Kind(), "sets survive the rarity filter")
}

func (s *PickerTestSuite) TestFallbackToUnfiltered() {
	entries := []loot.Entry{
		{Name: "dagger"},
		{Name: "club", Weight: loot.Int(3)},
	}
	s.roller.Faces = []int{4}

	got, err := s.picker.Pick(entries, selection.RaritySet{loot.RarityRare: true})
	s.Require().NoError(err)
	s.Equal("club", got.Name)
	s.Equal([]int{4}, s.roller.Calls)
}

func (s *PickerTestSuite) TestFallbackWhenEligibleEntriesAreWeightless() {
	entries := []loot.Entry{
		{Name: "dagger"},
		{Name: "cursed", Rarity: loot.RarityRare, Weight: loot.Int(0)},
	}

	got, err := s.picker.Pick(entries, selection.RaritySet{loot.RarityRare: true})
	s.Require().NoError(err)
	s.Equal("dagger", got.Name)
}

func (s *PickerTestSuite) TestErrors() {
	_, err := s.picker.Pick(nil, nil)
	s.True(errors.GetCode(err) == errors.CodeFailedPrecondition)

	_, err = s.picker.Pick([]loot.Entry{{Name: "x", Weight: loot.Int(0)}}, nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "positive weight")
}

func (s *PickerTestSuite) TestReturnsInputEntry() {
	entries := []loot.Entry{{Name: "only"}}
	got, err := s.picker.Pick(entries, nil)
	s.Require().NoError(err)
	s.Same(&entries[0], got)
}

// chi-squared over 10,000 draws with weights 1/2/7. The critical value for
// two degrees of freedom at p = 0.0001 is 18.42.
func TestPicker_Distribution(t *testing.T) {
	p, err := selection.NewPicker(&selection.PickerConfig{Roller: toolkitdice.DefaultRoller})
	require.NoError(t, err)

	entries := []loot.Entry{
		{Name: "one", Weight: loot.Int(1)},
		{Name: "two", Weight: loot.Int(2)},
		{Name: "seven", Weight: loot.Int(7)},
	}

	const draws = 10000
	observed := map[string]float64{}
	for i := 0; i < draws; i++ {
		got, err := p.Pick(entries, nil)
		require.NoError(t, err)
		observed[got.Name]++
	}

	expected := map[string]float64{"one": 1000, "two": 2000, "seven": 7000}
	chi := 0.0
	for name, exp := range expected {
		diff := observed[name] - exp
		chi += diff * diff / exp
	}

	assert.Len(t, observed, 3)
	assert.Less(t, chi, 18.42, "observed %v", observed)
}
