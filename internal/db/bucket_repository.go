package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EncryptedBucket is one sealed blob row. The value column only ever
// holds ciphertext; nothing readable reaches the database file.
type EncryptedBucket struct {
	Name      string `gorm:"primaryKey;column:name"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (EncryptedBucket) TableName() string {
	return "encrypted_buckets"
}

type BucketRepository struct {
	database *gorm.DB
}

func NewBucketRepository(database *gorm.DB) *BucketRepository {
	return &BucketRepository{database: database}
}

// Get returns the stored blobs for the requested bucket names. Missing
// buckets are simply absent from the result map.
func (repo *BucketRepository) Get(keys []string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	rows := make([]EncryptedBucket, 0, len(keys))
	if err := repo.database.Where("name IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		values[row.Name] = row.Value
	}
	return values, nil
}

// Set upserts every given bucket in one transaction.
func (repo *BucketRepository) Set(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		for name, value := range values {
			row := EncryptedBucket{Name: name, Value: value, UpdatedAt: time.Now().UTC()}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes every bucket row.
func (repo *BucketRepository) Clear() error {
	return repo.database.Exec(`DELETE FROM encrypted_buckets`).Error
}
