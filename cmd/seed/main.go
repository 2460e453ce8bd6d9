// Seeds the demo teacher account used by the development-mode owner fallback.
// Idempotent: a second run leaves the existing account untouched.
package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/database"
	"github.com/quickgrade/quickgrade/internal/logger"
	"github.com/quickgrade/quickgrade/internal/model"
)

const demoTeacherEmail = "docente@example.com"

func main() {
	logger.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	var existing model.User
	err = db.First(&existing, "email = ?", demoTeacherEmail).Error
	if err == nil {
		log.Info().Str("id", existing.ID).Msg("Demo teacher already present")
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatal().Err(err).Msg("Demo teacher lookup failed")
	}

	// Random bytes, not a bcrypt hash: the account can never be logged into.
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate placeholder hash")
	}

	user := model.User{
		Email:        demoTeacherEmail,
		PasswordHash: hex.EncodeToString(buf),
		Role:         model.RoleDocente,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo teacher")
	}
	log.Info().Str("id", user.ID).Msg("Created demo teacher")
}
