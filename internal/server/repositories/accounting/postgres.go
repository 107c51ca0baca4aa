package accounting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dkurganov/guestgate/internal/dbx"
	"github.com/dkurganov/guestgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SummarizeByUser groups radacct sessions by username within the filter
// bounds. Missing numeric columns count as zero; sessions with a NULL start
// keep the aggregate's last_login nullable.
func (r *PostgresRepository) SummarizeByUser(ctx context.Context, filter Filter, sort Sort, limit int) ([]*models.UsageSummary, error) {

	var where []string
	var args []any
	if filter.Start != nil {
		args = append(args, *filter.Start)
		where = append(where, fmt.Sprintf("acctstarttime >= $%d", len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		where = append(where, fmt.Sprintf("acctstarttime <= $%d", len(args)))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	column, direction := sort.Resolve()
	if limit <= 0 || limit > MaxRows {
		limit = MaxRows
	}

	query := fmt.Sprintf(
		`SELECT username,
		        COUNT(*) AS sessions,
		        MAX(acctstarttime) AS last_login,
		        COALESCE(SUM(acctsessiontime),0) AS total_time,
		        COALESCE(SUM(acctinputoctets),0) AS input_octets,
		        COALESCE(SUM(acctoutputoctets),0) AS output_octets
		 FROM radacct
		 %s
		 GROUP BY username
		 ORDER BY %s %s
		 LIMIT %d`, whereSQL, column, direction, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.UsageSummary
	for rows.Next() {
		summary := &models.UsageSummary{}
		var lastLogin sql.NullTime
		if err := rows.Scan(&summary.Username, &summary.SessionCount, &lastLogin,
			&summary.TotalDurationSeconds, &summary.TotalBytesIn, &summary.TotalBytesOut); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			summary.LastLogin = &t
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// ActiveUsersSince counts distinct usernames with a session started after the
// given instant.
func (r *PostgresRepository) ActiveUsersSince(ctx context.Context, since time.Time) (int64, error) {
	query :=
		`SELECT COUNT(DISTINCT username) FROM radacct
		 WHERE acctstarttime > $1
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// TotalOctets returns the all-time sum of input and output octets.
func (r *PostgresRepository) TotalOctets(ctx context.Context) (int64, error) {
	query :=
		`SELECT COALESCE(SUM(acctinputoctets),0) + COALESCE(SUM(acctoutputoctets),0)
		 FROM radacct
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
