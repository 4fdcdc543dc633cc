package repository

import (
	"lmsplatform/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.CourseDivision{},
		&domain.Chapter{},
		&domain.Purchase{},
		&domain.UserProgress{},
	)
}
