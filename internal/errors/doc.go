// Package errors provides the structured error type used across rpg-loot.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// metadata. Wrapping preserves the code of the innermost *Error, so callers can
// branch on the kind of failure regardless of how many layers added context.
//
// # Basic Usage
//
//	err := errors.NotFoundf("table %s not found", name)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrapf(err, "failed to resolve %s", name)
//	}
//
//	if errors.IsNotFound(err) {
//	    // the data set is incomplete
//	}
//
// # Kinds used by the resolver
//
//   - NotFound: a table or the material table has no backing data
//   - CycleOrTooDeep: a chain of table references exceeded the depth limit
//   - InvalidArgument: bad settings or malformed table files
//
// A budget violation is not an error. It is reported on the result and
// handled by rerolling.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("origin_table", settings.OriginTable, vb)
//	errors.ValidatePercent("rare_chance", settings.RareChance, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
