package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lokamart/internal/models"
	"github.com/example/lokamart/internal/storage"
)

// Sentinel errors mapped to HTTP statuses by the upload handler.
var (
	ErrEmptyImage         = errors.New("image payload is empty")
	ErrUserNotFound       = errors.New("user not found")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)

// AvatarService replaces a user's avatar object and keeps the database
// pointer consistent with the store.
type AvatarService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

// NewAvatarService constructs an AvatarService.
func NewAvatarService(db *gorm.DB, store storage.ObjectStore) *AvatarService {
	return &AvatarService{db: db, store: store}
}

// ReplaceAvatar deletes the previous avatar object best-effort, writes the
// new one under a fresh key, and only then updates the user row. The row is
// the single source of truth for the current avatar, and it is never updated
// before the object it points at exists. A crash between put and update
// leaves an orphaned object, never a broken reference.
func (s *AvatarService) ReplaceAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// Losing an orphaned old object is preferable to blocking the replace.
	if user.AvatarURL != nil {
		if key, ok := s.store.KeyFromURL(*user.AvatarURL); ok {
			if err := s.store.Delete(ctx, key); err != nil {
				log.Printf("[Avatar] failed to delete old object %s for user %s: %v", key, userID, err)
			}
		}
	}

	// Nanosecond suffix keeps concurrent replacements from colliding on a key.
	key := fmt.Sprintf("avatar/%s_%d%s", userID, time.Now().UnixNano(), extensionFor(contentType))
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	publicURL := s.store.PublicURL(key)
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", publicURL).Error; err != nil {
		return "", err
	}

	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
