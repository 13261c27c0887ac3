package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized indicates the database schema has not been created yet.
// Run 'carbontrack init' to create it.
var ErrNotInitialized = errors.New("database not initialized: run 'carbontrack init' first")

// ErrOrphanedActivities indicates that one or more daily_activities rows
// reference a category that does not exist. The analyzer refuses to report
// over such a snapshot rather than silently dropping the orphaned rows.
var ErrOrphanedActivities = errors.New("data integrity violation: activity records reference a nonexistent category")

// ErrUnknownCategory indicates a lookup or insert against a category name or
// id that is not present in the catalog.
var ErrUnknownCategory = errors.New("unknown activity category")

// wrapSchemaErr maps sqlite "no such table" failures to ErrNotInitialized so
// callers can detect an uninitialized database with errors.Is. All other
// errors pass through unchanged.
func wrapSchemaErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w (%v)", ErrNotInitialized, err)
	}
	return err
}
