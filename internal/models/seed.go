package models

import (
	"fmt"

	"clubhub/internal/rbac"

	console "clubhub/internal/utils/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// LoadClubMatrices reads tenant permission overrides and merges each club's
// set on top of the compiled-in default matrix. Overrides can change or add
// cells but never remove a default cell. A missing table or a read error
// falls back to the defaults for every club; the gate is never left without
// a matrix.
func LoadClubMatrices(db *gorm.DB) map[string]*rbac.Matrix {
	base := rbac.DefaultMatrix()

	var rows []MatrixOverride
	if err := db.Where("is_deleted = ?", false).Find(&rows).Error; err != nil {
		log.Warn("Failed to load matrix overrides, using defaults: %v", err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	byClub := make(map[string][]rbac.Override)
	for _, row := range rows {
		byClub[row.ClubID] = append(byClub[row.ClubID], rbac.Override{
			Role:   rbac.Role(row.Role),
			Module: rbac.Module(row.Module),
			Level:  rbac.Level(row.Level),
		})
	}

	merged := make(map[string]*rbac.Matrix, len(byClub))
	for clubID, overrides := range byClub {
		merged[clubID] = base.Merged(overrides)
	}
	log.Success("Loaded permission overrides for %d clubs", len(merged))
	return merged
}

// SeedDemoClub creates a minimal demo tenant when none exists yet. Used by
// fresh installs so the API has something to serve; no-op otherwise.
func SeedDemoClub(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Club{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count clubs: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	club := Club{
		Name:          "FC Awesome",
		ContactEmail:  "office@fcawesome.example",
		ClubLoginUser: "fcawesome",
		Password:      string(hash),
	}
	if err := db.Create(&club).Error; err != nil {
		return fmt.Errorf("failed to create demo club: %w", err)
	}

	log.Success("Seeded demo club %s", club.Name)
	return nil
}
