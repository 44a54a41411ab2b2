// file: internals/features/users/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel: profil minimal yang dibaca core (nama & tanggal lahir masuk
// snapshot sertifikat). Auth/password di-handle collaborator lain.
type UserModel struct {
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserFullName    string     `gorm:"column:user_full_name;type:text;not null" json:"user_full_name"`
	UserEmail       string     `gorm:"column:user_email;type:text;not null;uniqueIndex" json:"user_email"`
	UserDateOfBirth *time.Time `gorm:"column:user_date_of_birth" json:"user_date_of_birth,omitempty"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
