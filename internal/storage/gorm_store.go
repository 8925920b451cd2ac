package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type entryRow struct {
	Namespace string    `gorm:"column:namespace;primaryKey;size:64"`
	Key       string    `gorm:"column:storage_key;primaryKey;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (entryRow) TableName() string { return "client_storage" }

// GormStore keeps entries in the client_storage table, one row per
// (namespace, key).
type GormStore struct {
	db        *gorm.DB
	namespace string
}

func NewGormStore(db *gorm.DB, namespace string) (*GormStore, error) {
	if err := db.AutoMigrate(&entryRow{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db, namespace: namespace}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row entryRow
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND storage_key = ?", s.namespace, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	row := entryRow{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("namespace = ? AND storage_key = ?", s.namespace, key).
		Delete(&entryRow{}).Error
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("namespace = ?", s.namespace).
		Delete(&entryRow{}).Error
}

// DeleteStale removes entries of every namespace not written since before.
func (s *GormStore) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("updated_at < ?", before.UTC()).
		Delete(&entryRow{})
	return res.RowsAffected, res.Error
}
