// file: internals/features/certificate/certificates/model/certificate_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateModel: sertifikat terbit, terminal — tidak ada path update/re-issue.
// Maksimal satu per (user, course); certificate_number unik global untuk
// verifikasi publik. Kolom snapshot dibekukan saat issuance dan tidak pernah
// dihitung ulang walau profil user / struktur course berubah.
type CertificateModel struct {
	CertificateID       uuid.UUID `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`
	CertificateUserID   uuid.UUID `gorm:"column:certificate_user_id;type:uuid;not null;uniqueIndex:uq_certificates_user_course,priority:1" json:"certificate_user_id"`
	CertificateCourseID uuid.UUID `gorm:"column:certificate_course_id;type:uuid;not null;uniqueIndex:uq_certificates_user_course,priority:2" json:"certificate_course_id"`

	CertificateTemplateID uuid.UUID `gorm:"column:certificate_template_id;type:uuid;not null" json:"certificate_template_id"`

	CertificateNumber    string    `gorm:"column:certificate_number;type:text;not null;uniqueIndex" json:"certificate_number"`
	CertificateIssueDate time.Time `gorm:"column:certificate_issue_date;not null" json:"certificate_issue_date"`

	// Snapshot saat issuance
	CertificateHolderName      string     `gorm:"column:certificate_holder_name;type:text;not null" json:"certificate_holder_name"`
	CertificateHolderBirthDate *time.Time `gorm:"column:certificate_holder_birth_date" json:"certificate_holder_birth_date,omitempty"`
	CertificateCourseTitle     string     `gorm:"column:certificate_course_title;type:text;not null" json:"certificate_course_title"`
	CertificateCourseStartedAt time.Time  `gorm:"column:certificate_course_started_at;not null" json:"certificate_course_started_at"`
	CertificateCourseEndedAt   time.Time  `gorm:"column:certificate_course_ended_at;not null" json:"certificate_course_ended_at"`

	CertificateCreatedAt time.Time `gorm:"column:certificate_created_at;autoCreateTime" json:"certificate_created_at"`
}

func (CertificateModel) TableName() string { return "certificates" }

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}
