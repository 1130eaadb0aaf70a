package tables_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/repositories/tables"
)

const armorJSON = `[
  {"type": "table", "name": "light_armor", "weight": 3, "modifier": "special_materials"},
  {"type": "table", "name": "heavy_armor", "max_value": 1500}
]`

const weaponsYAML = `
- name: Dagger
  value: 2
  weight: 4
- name: Longsword
  value: 1d6*5
  rarity: uncommon
- items:
    - name: Shortbow
      value: 25
    - name: Arrows
      display_value: 2d10
      display_unit: cp
`

type FileRepositoryTestSuite struct {
	suite.Suite
	dir  string
	repo tables.Repository
	ctx  context.Context
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.ctx = context.Background()
	s.write("armor.json", armorJSON)
	s.write("weapons.yaml", weaponsYAML)
	s.write("README.md", "not a table")

	repo, err := tables.NewFile(&tables.FileConfig{Dir: s.dir})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *FileRepositoryTestSuite) write(name, content string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o600))
}

func (s *FileRepositoryTestSuite) TestNewFile() {
	_, err := tables.NewFile(nil)
	s.Error(err)

	_, err = tables.NewFile(&tables.FileConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestGetJSON() {
	out, err := s.repo.Get(s.ctx, tables.GetInput{Name: "armor"})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)

	light := out.Entries[0]
	s.Equal(loot.KindTable, light.Kind())
	s.Equal(3, light.EffectiveWeight())
	s.Equal(loot.Tags{loot.SpecialMaterialsTag}, light.Modifier)

	heavy := out.Entries[1]
	s.Require().NotNil(heavy.MaxValue)
	s.Equal(1500.0, *heavy.MaxValue)
}

func (s *FileRepositoryTestSuite) TestGetYAML() {
	out, err := s.repo.Get(s.ctx, tables.GetInput{Name: "weapons"})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 3)

	s.Equal("Dagger", out.Entries[0].Name)
	s.Equal(2.0, out.Entries[0].Value.Literal)
	s.Equal("1d6*5", out.Entries[1].Value.Expr)
	s.Equal(loot.RarityUncommon, out.Entries[1].EffectiveRarity())

	set := out.Entries[2]
	s.Equal(loot.KindSet, set.Kind())
	s.Require().Len(set.Items, 2)
	s.Equal("2d10", set.Items[1].DisplayValue.Expr)
	s.Equal("cp", set.Items[1].DisplayUnit)
}

func (s *FileRepositoryTestSuite) TestGetIsCached() {
	_, err := s.repo.Get(s.ctx, tables.GetInput{Name: "armor"})
	s.Require().NoError(err)

	s.Require().NoError(os.Remove(filepath.Join(s.dir, "armor.json")))

	out, err := s.repo.Get(s.ctx, tables.GetInput{Name: "armor"})
	s.Require().NoError(err)
	s.Len(out.Entries, 2)
}

func (s *FileRepositoryTestSuite) TestGetErrors() {
	testCases := []struct {
		name    string
		table   string
		checkFn func(error) bool
	}{
		{"empty name", "", errors.IsInvalidArgument},
		{"path traversal", "../etc/passwd", errors.IsInvalidArgument},
		{"nested path", "sub/table", errors.IsInvalidArgument},
		{"missing table", "potions", errors.IsNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Get(s.ctx, tables.GetInput{Name: tc.table})
			s.Require().Error(err)
			s.True(tc.checkFn(err), "unexpected error: %v", err)
		})
	}
}

func (s *FileRepositoryTestSuite) TestGetMalformed() {
	s.write("broken.json", `{"name": "not a list"}`)

	_, err := s.repo.Get(s.ctx, tables.GetInput{Name: "broken"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal("broken", errors.GetMeta(err)["table"])
}

func (s *FileRepositoryTestSuite) TestList() {
	s.write("weapons.yml", "[]")
	s.Require().NoError(os.Mkdir(filepath.Join(s.dir, "nested.json"), 0o700))

	out, err := s.repo.List(s.ctx, tables.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"armor", "weapons"}, out.Names)
}

func (s *FileRepositoryTestSuite) TestListMissingDir() {
	repo, err := tables.NewFile(&tables.FileConfig{Dir: filepath.Join(s.dir, "missing")})
	s.Require().NoError(err)

	_, err = repo.List(s.ctx, tables.ListInput{})
	s.True(errors.IsNotFound(err))
}

func TestDecodeYAML_Materials(t *testing.T) {
	doc := `
- name: Adamantine
  value:
    weapons: 2x
    armor: 500
`
	entries, err := tables.DecodeYAML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	weapons, ok := entries[0].EffectFor("weapons")
	assert.True(t, ok)
	assert.Equal(t, 2.0, weapons.Multiplier)

	armor, ok := entries[0].EffectFor("armor")
	assert.True(t, ok)
	assert.Equal(t, 500.0, armor.Bonus)
}

func TestDecodeYAML_Malformed(t *testing.T) {
	_, err := tables.DecodeYAML([]byte("- name: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
