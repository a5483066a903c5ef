package models

import (
	"time"

	"github.com/google/uuid"
)

// BannedEmail blocks registration and login for an address. Emails are
// stored lower-cased so lookups are case-insensitive.
type BannedEmail struct {
	Email    string    `gorm:"primaryKey" json:"email"`
	Reason   string    `json:"reason"`
	BannedAt time.Time `json:"banned_at"`
}

// ProblemReport is a user-filed report about the platform itself.
type ProblemReport struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Header   string    `json:"report_header"`
	Content  string    `json:"report_content"`
	ImageURL *string   `json:"image_url"`
	IsRead   bool      `gorm:"default:false" json:"is_read"`
}

// UserReport is a user-filed report against another user.
type UserReport struct {
	BaseModel
	ReporterID uuid.UUID `gorm:"type:uuid;index" json:"reporter_id"`
	Reporter   User      `gorm:"foreignKey:ReporterID" json:"-"`
	ReportedID uuid.UUID `gorm:"type:uuid;index" json:"reported_id"`
	Reported   User      `gorm:"foreignKey:ReportedID" json:"-"`
	Header     string    `json:"report_header"`
	Content    string    `json:"report_content"`
	ImageURL   *string   `json:"image_url"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
}
