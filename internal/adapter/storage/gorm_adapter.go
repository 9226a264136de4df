package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshot is one persisted cart, keyed by the storage key.
type CartSnapshot struct {
	StorageKey string    `gorm:"primaryKey;type:varchar(191)"`
	Value      string    `gorm:"type:text;not null"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}

// OpenPostgres connects gorm to the postgres instance behind dsn.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

type GormAdapter struct {
	db *gorm.DB
}

func NewGormAdapter(db *gorm.DB) *GormAdapter {
	return &GormAdapter{db: db}
}

func (g *GormAdapter) EnsureSchema(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(&CartSnapshot{}); err != nil {
		return fmt.Errorf("migrate cart_snapshots: %w", err)
	}
	return nil
}

func (g *GormAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	var snaps []CartSnapshot

	// Find instead of First so a missing key is not logged as an error
	res := g.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Limit(1).
		Find(&snaps)
	if res.Error != nil {
		return "", false, fmt.Errorf("query snapshot: %w", res.Error)
	}
	if len(snaps) == 0 {
		return "", false, nil
	}

	return snaps[0].Value, true, nil
}

func (g *GormAdapter) Set(ctx context.Context, key, value string) error {
	snap := CartSnapshot{
		StorageKey: key,
		Value:      value,
		UpdatedAt:  time.Now(),
	}

	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&snap).Error
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	return nil
}

func (g *GormAdapter) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *GormAdapter) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
