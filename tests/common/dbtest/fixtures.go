//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertOrderLine records a sale referencing a work. Used to exercise
// the referential guard on work deletion.
func InsertOrderLine(t *testing.T, db DBLike, workID uuid.UUID, quantity int, unitPrice int64) uuid.UUID {
	t.Helper()

	lineID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO order_lines (id, order_id, work_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)",
		lineID, uuid.New(), workID, quantity, unitPrice)
	require.NoError(t, err)

	return lineID
}

// SetWorkStatus forces a lifecycle state directly, bypassing the API.
// Useful to stage works in states the flow under test does not pass through.
func SetWorkStatus(t *testing.T, db DBLike, workID uuid.UUID, status string) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "UPDATE works SET status = $1 WHERE id = $2", status, workID)
	require.NoError(t, err)
}

// CountNotificationJobs reports how many jobs were enqueued for a topic.
func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var count int
	ctx := context.Background()
	err := db.QueryRow(ctx, "SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&count)
	require.NoError(t, err)

	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
