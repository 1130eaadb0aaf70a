package tables

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// tableExtensions are tried in order when looking up a table file
var tableExtensions = []string{".json", ".yaml", ".yml"}

// FileConfig contains configuration for the directory-backed repository
type FileConfig struct {
	// Dir holds one file per table, named <table>.json, <table>.yaml or <table>.yml
	Dir string
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Dir", cfg.Dir, vb)
	return vb.Build()
}

type fileRepository struct {
	dir string

	mu    sync.RWMutex
	cache map[string][]loot.Entry
}

// NewFile creates a repository that reads tables from a directory. Tables
// are parsed on first use and cached for the life of the repository.
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fileRepository{
		dir:   cfg.Dir,
		cache: make(map[string][]loot.Entry),
	}, nil
}

var _ Repository = (*fileRepository)(nil)

func (r *fileRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries, ok := r.cache[input.Name]
	r.mu.RUnlock()
	if ok {
		return &GetOutput{Name: input.Name, Entries: entries}, nil
	}

	entries, err := r.load(input.Name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[input.Name] = entries
	r.mu.Unlock()

	return &GetOutput{Name: input.Name, Entries: entries}, nil
}

func (r *fileRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	files, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("table directory %s not found", r.dir)
		}
		return nil, errors.Wrapf(err, "failed to read table directory %s", r.dir)
	}

	seen := make(map[string]bool)
	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name())
		if !isTableExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return &ListOutput{Names: names}, nil
}

func (r *fileRepository) load(name string) ([]loot.Entry, error) {
	for _, ext := range tableExtensions {
		path := filepath.Join(r.dir, name+ext)
		data, err := os.ReadFile(path) // #nosec G304 -- name is validated above
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read table %s", name)
		}

		entries, err := decodeFile(ext, data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", path).WithMeta("table", name)
		}
		return entries, nil
	}

	return nil, errors.NotFoundf("table %s not found", name).WithMeta("dir", r.dir)
}

func decodeFile(ext string, data []byte) ([]loot.Entry, error) {
	if ext == ".json" {
		return loot.DecodeTable(data)
	}
	return DecodeYAML(data)
}

// DecodeYAML decodes a YAML table document. It is re-encoded as JSON so both
// formats share one entry decoder.
func DecodeYAML(data []byte) ([]loot.Entry, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed yaml table")
	}

	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "yaml table is not representable as json")
	}

	return loot.DecodeTable(asJSON)
}

func isTableExtension(ext string) bool {
	for _, e := range tableExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
