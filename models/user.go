package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// User represents a learner. Passwords are stored as bcrypt hashes only.
// XP only ever increases; Level is a projection of XP and is reconciled on
// read rather than written independently.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;not null" json:"username"`
	Email        string         `gorm:"size:255" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Provider     string         `gorm:"size:32" json:"provider"`
	ProviderID   string         `gorm:"size:255" json:"provider_id"`
	XP           int            `gorm:"default:0" json:"xp"`
	Level        int            `gorm:"default:1" json:"level"`
	Badges       string         `gorm:"type:text" json:"-"` // JSON array of badge ids, append-only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Goals        []Goal         `json:"-"`
	CheckIns     []CheckIn      `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// BadgeIDs decodes the stored badge id list. A corrupt or empty column reads
// as no badges rather than an error.
func (u *User) BadgeIDs() []string {
	if u.Badges == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(u.Badges), &ids); err != nil {
		return nil
	}
	return ids
}

// AddBadges appends the given badge ids, skipping ones already held, and
// reports whether the stored set changed.
func (u *User) AddBadges(ids []string) bool {
	held := u.BadgeIDs()
	have := make(map[string]bool, len(held))
	for _, id := range held {
		have[id] = true
	}
	changed := false
	for _, id := range ids {
		if !have[id] {
			held = append(held, id)
			have[id] = true
			changed = true
		}
	}
	if changed {
		b, err := json.Marshal(held)
		if err != nil {
			return false
		}
		u.Badges = string(b)
	}
	return changed
}
