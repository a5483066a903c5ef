package services

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/lokamart/internal/models"
)

// BanlistService manages the banned-email registry.
type BanlistService struct {
	db *gorm.DB
}

// NewBanlistService constructs a BanlistService.
func NewBanlistService(db *gorm.DB) *BanlistService {
	return &BanlistService{db: db}
}

// Ban upserts a ban for the address. Banning an already-banned address
// refreshes the reason and timestamp instead of failing.
func (s *BanlistService) Ban(email, reason string) (models.BannedEmail, error) {
	ban := models.BannedEmail{
		Email:    NormalizeEmail(email),
		Reason:   reason,
		BannedAt: time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason", "banned_at"}),
	}).Create(&ban).Error

	return ban, err
}

// Unban removes a ban and reports whether one existed.
func (s *BanlistService) Unban(email string) (bool, error) {
	res := s.db.Where("email = ?", NormalizeEmail(email)).Delete(&models.BannedEmail{})
	return res.RowsAffected > 0, res.Error
}

// IsBanned reports whether the address is currently banned, ignoring case.
func (s *BanlistService) IsBanned(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BannedEmail{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// List returns every ban entry, newest first.
func (s *BanlistService) List() ([]models.BannedEmail, error) {
	var bans []models.BannedEmail
	err := s.db.Order("banned_at desc").Find(&bans).Error
	return bans, err
}

// NormalizeEmail lower-cases and trims an address so comparisons against the
// registry and the users table are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
