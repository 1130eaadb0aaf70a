package tables

import (
	"strings"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

const errNameEmpty = "table name cannot be empty"

// validateName rejects names that could escape a table directory or key space
func validateName(name string) error {
	if name == "" {
		return errors.InvalidArgument(errNameEmpty)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return errors.InvalidArgumentf("invalid table name %q", name)
	}
	return nil
}
