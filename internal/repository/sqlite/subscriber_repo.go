package sqlite

import (
	"context"
	"fmt"
	"time"

	"go-formrelay-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriberRow struct {
	ID                uint       `gorm:"primaryKey"`
	Email             string     `gorm:"size:255;not null;uniqueIndex"`
	IPAddress         string     `gorm:"size:45"`
	SubscriptionToken string     `gorm:"size:64"`
	SubscribedAt      time.Time  `gorm:"not null"`
	ConfirmedAt       *time.Time
	Status            string     `gorm:"size:16;not null;default:pending;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type subscriberRepo struct {
	db    *gorm.DB
	table string
}

// NewSubscriberRepository keeps subscribers in a local SQLite table.
func NewSubscriberRepository(db *gorm.DB, table string) domain.SubscriberRepository {
	return &subscriberRepo{db: db, table: table}
}

func (r *subscriberRepo) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *subscriberRepo) EnsureSchema(ctx context.Context) error {
	if err := r.scoped(ctx).AutoMigrate(&subscriberRow{}); err != nil {
		return fmt.Errorf("migrate subscriber table: %w", err)
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

	var n int64
	err := r.scoped(ctx).
		Where("email = ? AND status IN ?", email, values).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *subscriberRepo) InsertIfAbsent(ctx context.Context, rec *domain.SubscriberRecord) (bool, error) {
	row := subscriberRow{
		Email:             rec.Email,
		IPAddress:         rec.IPAddress,
		SubscriptionToken: rec.SubscriptionToken,
		SubscribedAt:      rec.SubscribedAt,
		Status:            string(rec.Status),
	}

	res := r.scoped(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"ip_address", "subscription_token", "subscribed_at", "status", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Name: "status"}, Value: string(domain.SubscriberUnsubscribed)},
		}},
	}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
