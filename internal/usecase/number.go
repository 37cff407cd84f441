package usecase

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"gorm.io/gorm"
)

const numberAttempts = 3

// createNumbered runs create with a fresh reference number, retrying on a unique
// collision. The savepoint keeps the surrounding transaction usable after a failed insert.
func createNumbered(tx *gorm.DB, prefix, constraint string, create func(number string) error) error {
	for attempt := 1; ; attempt++ {
		if err := tx.SavePoint("numbered").Error; err != nil {
			return err
		}
		err := create(entity.GenerateNumber(prefix, time.Now()))
		if err == nil || !isDuplicateKeyError(err, constraint) || attempt == numberAttempts {
			return err
		}
		if err := tx.RollbackTo("numbered").Error; err != nil {
			return err
		}
	}
}
