package models

import "time"

// AccessAudit is one denied permission check, written asynchronously by the
// audit task so the denied request itself never waits on the insert.
type AccessAudit struct {
	Base
	Email    string    `gorm:"index" json:"email"`
	Role     string    `json:"role"`
	ClubID   string    `gorm:"index" json:"clubId"`
	Module   string    `gorm:"not null" json:"module"`
	DeniedAt time.Time `gorm:"not null;index" json:"deniedAt"`
}

// MatrixOverride is one tenant-configured cell of the permission matrix. At
// startup the overrides are merged on top of the compiled-in defaults; a
// missing or empty table means the defaults apply unchanged.
type MatrixOverride struct {
	Base
	ClubID string `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Role   string `gorm:"not null" json:"role" validate:"required,club_role"`
	Module string `gorm:"not null" json:"module" validate:"required"`
	Level  string `gorm:"not null" json:"level" validate:"required,permission_level"`
}
