package user

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the internal row mapped 1:1 to an external identity subject.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;size:64;not null" json:"externalId"`
	Email      string    `gorm:"size:255" json:"email"`
	Name       string    `gorm:"size:128" json:"name"`
	Role       Role      `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Sync resolves an external identity subject to the internal user row,
// creating it on first sight. Returns the row and whether it was created.
func Sync(db *gorm.DB, externalID, email, name string) (*User, bool, error) {
	var u User
	err := db.Where("external_id = ?", externalID).First(&u).Error
	if err == nil {
		return &u, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}
	u = User{
		ExternalID: externalID,
		Email:      email,
		Name:       name,
		Role:       RoleUser,
	}
	// A concurrent first request for the same subject can win the insert;
	// the unique index makes that visible, so re-read instead of failing.
	if err := db.Create(&u).Error; err != nil {
		if err2 := db.Where("external_id = ?", externalID).First(&u).Error; err2 == nil {
			return &u, false, nil
		}
		return nil, false, err
	}
	return &u, true, nil
}
