package config

import (
	"github.com/thread-nest/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *Config) (*gorm.DB, error) {
	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey so handlers can map them.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := SetupJoinTables(db); err != nil {
		return nil, err
	}

	// Auto Migrate models
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Post{}, &models.Like{}, &models.Reply{}); err != nil {
		return nil, err
	}

	return db, nil
}

// SetupJoinTables registers models.Follow as the join model behind the
// users' follower/following associations so migrations create the follows
// table from it rather than an inferred two-column schema.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Followers", &models.Follow{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&models.User{}, "Following", &models.Follow{})
}
