// file: internals/features/certificate/certificates/model/certificate_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateTemplateModel: definisi konten sertifikat per course, maksimal
// satu per course (uniqueIndex). Tanpa template, issuance ditolak.
type CertificateTemplateModel struct {
	CertificateTemplateID       uuid.UUID `gorm:"column:certificate_template_id;type:uuid;primaryKey" json:"certificate_template_id"`
	CertificateTemplateCourseID uuid.UUID `gorm:"column:certificate_template_course_id;type:uuid;not null;uniqueIndex" json:"certificate_template_course_id"`

	CertificateTemplateTitle       string `gorm:"column:certificate_template_title;type:text;not null" json:"certificate_template_title"`
	CertificateTemplateDescription string `gorm:"column:certificate_template_description;type:text" json:"certificate_template_description"`
	CertificateTemplateURL         string `gorm:"column:certificate_template_url;type:text" json:"certificate_template_url"`

	CertificateTemplateCreatedAt time.Time `gorm:"column:certificate_template_created_at;autoCreateTime" json:"certificate_template_created_at"`
	CertificateTemplateUpdatedAt time.Time `gorm:"column:certificate_template_updated_at;autoUpdateTime" json:"certificate_template_updated_at"`
}

func (CertificateTemplateModel) TableName() string { return "certificate_templates" }

func (m *CertificateTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateTemplateID == uuid.Nil {
		m.CertificateTemplateID = uuid.New()
	}
	return nil
}
