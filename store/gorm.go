package store

import (
	"errors"
	"fmt"

	"progression-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists blobs in the progression_blobs Postgres table.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Load implements Store.
func (s *GormStore) Load(externalUserID, namespace string) ([]byte, error) {
	var blob models.ProgressionBlob
	err := s.DB.Where("external_user_id = ? AND namespace = ?", externalUserID, namespace).
		First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading blob %s/%s: %w", externalUserID, namespace, err)
	}
	return blob.Data, nil
}

// Save implements Store with an upsert on (user, namespace).
func (s *GormStore) Save(externalUserID, namespace string, data []byte) error {
	blob := models.ProgressionBlob{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Namespace:      namespace,
		Data:           data,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("saving blob %s/%s: %w", externalUserID, namespace, err)
	}
	return nil
}

// Delete implements Store.
func (s *GormStore) Delete(externalUserID, namespace string) error {
	return s.DB.Where("external_user_id = ? AND namespace = ?", externalUserID, namespace).
		Delete(&models.ProgressionBlob{}).Error
}

// Users implements Lister.
func (s *GormStore) Users() ([]string, error) {
	var users []string
	err := s.DB.Model(&models.ProgressionBlob{}).
		Distinct("external_user_id").
		Order("external_user_id").
		Pluck("external_user_id", &users).Error
	return users, err
}

// GormTransactionLog appends gem ledger entries to the gem_transactions
// audit table.
type GormTransactionLog struct {
	DB *gorm.DB
}

// NewGormTransactionLog wraps an open gorm connection.
func NewGormTransactionLog(db *gorm.DB) *GormTransactionLog {
	return &GormTransactionLog{DB: db}
}

// Record implements services.TransactionRecorder.
func (l *GormTransactionLog) Record(tx models.GemTransaction) error {
	return l.DB.Create(&tx).Error
}
