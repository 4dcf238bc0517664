package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-formrelay-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	val bool
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.val
	return nil
}

type fakeDB struct {
	queries []string
	args    [][]any
	tag     pgconn.CommandTag
	row     fakeRow
	execErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.tag, f.execErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.row
}

func TestBuildSubscriberQueriesQuotesTable(t *testing.T) {
	q := buildSubscriberQueries(`subs"; DROP TABLE x; --`)

	assert.Contains(t, q.createTable, `CREATE TABLE IF NOT EXISTS "subs""; DROP TABLE x; --"`)
	assert.Contains(t, q.exists, `FROM "subs""; DROP TABLE x; --"`)
	assert.Contains(t, q.upsert, `WHERE "subs""; DROP TABLE x; --".status = 'unsubscribed'`)
}

func TestEnsureSchemaRunsTableAndIndex(t *testing.T) {
	db := &fakeDB{}
	repo := NewSubscriberRepository(db, "newsletter_subscribers")

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.Len(t, db.queries, 2)
	assert.Contains(t, db.queries[0], `CREATE TABLE IF NOT EXISTS "newsletter_subscribers"`)
	assert.Contains(t, db.queries[1], `"idx_newsletter_subscribers_status"`)
}

func TestEnsureSchemaWrapsError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("permission denied")}
	err := NewSubscriberRepository(db, "t").EnsureSchema(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create subscriber table")
}

func TestExistsWithStatus(t *testing.T) {
	db := &fakeDB{row: fakeRow{val: true}}
	repo := NewSubscriberRepository(db, "t")

	ok, err := repo.ExistsWithStatus(context.Background(), "a@b.com", domain.SubscriberPending, domain.SubscriberActive)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []any{"a@b.com", []string{"pending", "active"}}, db.args[0])
}

func TestExistsWithStatusNoStatuses(t *testing.T) {
	db := &fakeDB{}
	ok, err := NewSubscriberRepository(db, "t").ExistsWithStatus(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, db.queries)
}

func TestInsertIfAbsent(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := &domain.SubscriberRecord{
		Email:             "a@b.com",
		IPAddress:         "203.0.113.7",
		SubscriptionToken: "tok",
		SubscribedAt:      at,
		Status:            domain.SubscriberPending,
	}

	db := &fakeDB{tag: pgconn.NewCommandTag("INSERT 0 1")}
	written, err := NewSubscriberRepository(db, "t").InsertIfAbsent(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, []any{"a@b.com", "203.0.113.7", "tok", at, "pending"}, db.args[0])

	db = &fakeDB{tag: pgconn.NewCommandTag("INSERT 0 0")}
	written, err = NewSubscriberRepository(db, "t").InsertIfAbsent(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, written)
}
