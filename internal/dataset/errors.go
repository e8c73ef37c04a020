package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataAccess matches every *DataAccessError via errors.Is.
var ErrDataAccess = errors.New("data access failed")

// ErrNoDataLoaded is returned by SaveEnriched when nothing has been loaded.
var ErrNoDataLoaded = errors.New("no data loaded")

// DataAccessError reports an input file that is missing or cannot be parsed.
type DataAccessError struct {
	Path string
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access %s: %v", e.Path, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDataAccess) true for any DataAccessError.
func (e *DataAccessError) Is(target error) bool {
	return target == ErrDataAccess
}

// ValidationError describes a candidate record that was not added.
type ValidationError struct {
	Index    int    // position in the batch passed to AddRecords
	RecordID string // supplied record_id, if any
	Reasons  []string
}

func (e ValidationError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "no id"
	}
	return fmt.Sprintf("record %d [%s]: %s", e.Index, id, strings.Join(e.Reasons, "; "))
}
