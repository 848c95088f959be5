package raffle

import (
	"fmt"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
)

// EmptyPoolError reports a category with zero eligible candidates. It is
// terminal for that category's result but never for the whole report; it
// usually indicates an empty or malformed cycle package rather than a bad
// seed.
type EmptyPoolError struct {
	Category    models.Category
	RecordsSeen int
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("no eligible candidates for category %q (%d records seen)", e.Category, e.RecordsSeen)
}

// MalformedRecordError reports a participant record that is missing a
// required field. It surfaces at package load time, before any pool is
// built, so the selector never sees a half-formed record.
type MalformedRecordError struct {
	File  string
	Row   int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record in %s row %d: missing or invalid field %q", e.File, e.Row, e.Field)
}
