package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"taskhub/internal/constants"
	"taskhub/internal/models"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := initSequences(DB); err != nil {
		return fmt.Errorf("failed to initialize sequences: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// initSequences moves each id sequence to its configured start value.
// AutoMigrate creates bigserial sequences starting at 1; the task sequence
// starts at 1000, so advance it once if it has never been consumed.
func initSequences(db *gorm.DB) error {
	sequences := []struct {
		name  string
		start int64
	}{
		{"users_id_seq", constants.UserSequenceStart},
		{"roles_id_seq", constants.RoleSequenceStart},
		{"tasks_id_seq", constants.TaskSequenceStart},
	}

	for _, seq := range sequences {
		if seq.start <= 1 {
			continue
		}

		var lastValue int64
		err := db.Raw(fmt.Sprintf("SELECT last_value FROM %s", seq.name)).Scan(&lastValue).Error
		if err != nil {
			return fmt.Errorf("failed to read sequence %s: %w", seq.name, err)
		}

		if lastValue >= seq.start {
			continue
		}

		// setval with is_called=false makes the next nextval return start.
		if err := db.Exec(fmt.Sprintf("SELECT setval('%s', %d, false)", seq.name, seq.start)).Error; err != nil {
			return fmt.Errorf("failed to advance sequence %s: %w", seq.name, err)
		}

		log.Printf("Sequence %s advanced to %d", seq.name, seq.start)
	}

	return nil
}
