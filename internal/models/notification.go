package models

import (
	"github.com/google/uuid"
)

// Notification is a direct message addressed to one user. "Sent" means the
// row exists; there is no delivery confirmation.
type Notification struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Header  string    `json:"notify_header"`
	Content string    `json:"notify_content"`
	IsRead  bool      `gorm:"default:false" json:"is_read"`
}
