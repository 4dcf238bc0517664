package postgres

import (
	"context"
	"fmt"

	"go-formrelay-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type subscriberQueries struct {
	createTable string
	createIndex string
	exists      string
	upsert      string
}

func buildSubscriberQueries(table string) subscriberQueries {
	t := pq.QuoteIdentifier(table)
	return subscriberQueries{
		createTable: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    ip_address VARCHAR(45),
    subscription_token VARCHAR(64),
    subscribed_at TIMESTAMPTZ NOT NULL,
    confirmed_at TIMESTAMPTZ,
    status VARCHAR(16) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'active', 'unsubscribed')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, t),
		createIndex: fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (status)`,
			pq.QuoteIdentifier("idx_"+table+"_status"), t),
		exists: fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1 AND status = ANY($2))`, t),
		// An unsubscribed address may sign up again; pending and active rows stay untouched.
		upsert: fmt.Sprintf(`INSERT INTO %[1]s (email, ip_address, subscription_token, subscribed_at, status)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (email) DO UPDATE SET
                  ip_address = EXCLUDED.ip_address,
                  subscription_token = EXCLUDED.subscription_token,
                  subscribed_at = EXCLUDED.subscribed_at,
                  status = EXCLUDED.status,
                  updated_at = NOW()
              WHERE %[1]s.status = 'unsubscribed'`, t),
	}
}

type subscriberRepo struct {
	db querier
	q  subscriberQueries
}

// NewSubscriberRepository stores subscribers in table. The name is quoted,
// so any configured value is safe to use.
func NewSubscriberRepository(db querier, table string) domain.SubscriberRepository {
	return &subscriberRepo{db: db, q: buildSubscriberQueries(table)}
}

func (r *subscriberRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, r.q.createTable); err != nil {
		return fmt.Errorf("create subscriber table: %w", err)
	}
	if _, err := r.db.Exec(ctx, r.q.createIndex); err != nil {
		return fmt.Errorf("create subscriber index: %w", err)
	}
	return nil
}

func (r *subscriberRepo) ExistsWithStatus(ctx context.Context, email string, statuses ...domain.SubscriberStatus) (bool, error) {
	if len(statuses) == 0 {
		return false, nil
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, r.q.exists, email, values).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *subscriberRepo) InsertIfAbsent(ctx context.Context, rec *domain.SubscriberRecord) (bool, error) {
	tag, err := r.db.Exec(ctx, r.q.upsert,
		rec.Email, rec.IPAddress, rec.SubscriptionToken, rec.SubscribedAt, string(rec.Status))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
