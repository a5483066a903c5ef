package models

// Roles a marketplace account can hold. Role is fixed at registration; there
// is no escalation endpoint.
const (
	RoleCustomer = "customer"
	RoleDriver   = "driver"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// User represents a marketplace account. PasswordHash is nil for accounts
// provisioned externally (social login); those authenticate by email
// resolution alone. AvatarURL is written only by the avatar service.
type User struct {
	BaseModel
	Email          string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash   *string `json:"-"`
	FullName       string  `json:"full_name"`
	Phone          string  `json:"phone"`
	Role           string  `gorm:"default:customer" json:"role"`
	Gender         string  `json:"gender"`
	AvatarURL      *string `json:"avatar_url"`
	Coin           int64   `gorm:"default:0" json:"coin"`
	DefaultAddress string  `json:"default_address"`
}
