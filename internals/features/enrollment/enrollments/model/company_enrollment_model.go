// file: internals/features/enrollment/enrollments/model/company_enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyEnrollmentModel: akses course yang di-assign perusahaan untuk
// karyawannya (actor_kind=company). Maksimal satu baris per (user, course).
type CompanyEnrollmentModel struct {
	CompanyEnrollmentID        uuid.UUID `gorm:"column:company_enrollment_id;type:uuid;primaryKey" json:"company_enrollment_id"`
	CompanyEnrollmentCompanyID uuid.UUID `gorm:"column:company_enrollment_company_id;type:uuid;not null;index" json:"company_enrollment_company_id"`
	CompanyEnrollmentUserID    uuid.UUID `gorm:"column:company_enrollment_user_id;type:uuid;not null;uniqueIndex:uq_company_enrollments_user_course,priority:1" json:"company_enrollment_user_id"`
	CompanyEnrollmentCourseID  uuid.UUID `gorm:"column:company_enrollment_course_id;type:uuid;not null;uniqueIndex:uq_company_enrollments_user_course,priority:2" json:"company_enrollment_course_id"`

	CompanyEnrollmentIsPaymentDone bool `gorm:"column:company_enrollment_is_payment_done;not null;default:false" json:"company_enrollment_is_payment_done"`

	CompanyEnrollmentProgressPercent int  `gorm:"column:company_enrollment_progress_percent;not null;default:0" json:"company_enrollment_progress_percent"`
	CompanyEnrollmentIsCompleted     bool `gorm:"column:company_enrollment_is_completed;not null;default:false" json:"company_enrollment_is_completed"`

	CompanyEnrollmentCreatedAt time.Time `gorm:"column:company_enrollment_created_at;autoCreateTime" json:"company_enrollment_created_at"`
	CompanyEnrollmentUpdatedAt time.Time `gorm:"column:company_enrollment_updated_at;autoUpdateTime" json:"company_enrollment_updated_at"`
}

func (CompanyEnrollmentModel) TableName() string { return "company_enrollments" }

func (m *CompanyEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.CompanyEnrollmentID == uuid.Nil {
		m.CompanyEnrollmentID = uuid.New()
	}
	return nil
}
