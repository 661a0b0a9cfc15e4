package tables

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/commonargs/errors"
)

// SchemaVersion is the schema written by this version of commonargs
const SchemaVersion = "1.0"

// SupportedSchemas is the constraint a table file's schema must satisfy
const SupportedSchemas = ">= 1.0, < 2.0"

// CheckSchema verifies that schema is a version this loader understands
func CheckSchema(schema string) error {
	if schema == "" {
		return errors.WithHintf(
			errors.NewInvalidTableError("schema version is required"),
			"add schema = %q at the top of the file", SchemaVersion)
	}

	v, err := semver.NewVersion(schema)
	if err != nil {
		return errors.NewInvalidTableError("invalid schema version %q: %v", schema, err)
	}

	constraint, err := semver.NewConstraint(SupportedSchemas)
	if err != nil {
		return errors.Wrap(err, "invalid schema constraint")
	}
	if !constraint.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrIncompatibleSchema, "schema %s does not satisfy %s", v, SupportedSchemas),
			"this build of commonargs reads schema %s", SchemaVersion)
	}
	return nil
}
