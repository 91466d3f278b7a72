// Placeholder for direct warehouse export.
//
// Ingestion of the enriched rows into the site's reporting database is handled by external
// ingestion code today.  This seam exists so the jobs verb can grow a -sql target without
// reshaping the pipeline; until then, asking for it is an error.

package db

import (
	"errors"
)

// MT: Constant after initialization; immutable
var NoSQLErr = errors.New("SQL export is not implemented, use the CSV output")

func OpenWarehouse(uri string) error {
	return NoSQLErr
}
