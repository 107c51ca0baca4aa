package accounting

import (
	"context"
	"strings"
	"time"

	"github.com/dkurganov/guestgate/internal/server/models"
)

// MaxRows caps every per-user summary read. The admin table is not paginated,
// so the cap keeps a busy radacct from flooding the dashboard.
const MaxRows = 500

// Filter bounds the summarized sessions by acctstarttime. Either side may be
// nil for an open range.
type Filter struct {
	Start *time.Time
	End   *time.Time
}

// Sort is a caller-requested ordering. Column and Direction are resolved
// against a fixed allow-list before any SQL is built; unknown values fall
// back to last_login descending.
type Sort struct {
	Column    string
	Direction string
}

var sortColumns = map[string]string{
	"username":      "username",
	"sessions":      "sessions",
	"last_login":    "last_login",
	"total_time":    "total_time",
	"input_octets":  "input_octets",
	"output_octets": "output_octets",
}

// Resolve returns the SQL-safe column and direction tokens for this sort.
// Caller-supplied strings never reach the query directly.
func (s Sort) Resolve() (column, direction string) {
	column, ok := sortColumns[s.Column]
	if !ok {
		column = "last_login"
	}
	direction = "DESC"
	if strings.EqualFold(s.Direction, "asc") {
		direction = "ASC"
	}
	return column, direction
}

type Repository interface {
	SummarizeByUser(ctx context.Context, filter Filter, sort Sort, limit int) ([]*models.UsageSummary, error)
	ActiveUsersSince(ctx context.Context, since time.Time) (int64, error)
	TotalOctets(ctx context.Context) (int64, error)
}
