package models

import (
	"gorm.io/gorm"
)

func GetMemberByEmail(email string, db *gorm.DB) (*Member, error) {
	member := &Member{}
	if err := db.Where("LOWER(email) = LOWER(?) AND is_deleted = false", email).First(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}
