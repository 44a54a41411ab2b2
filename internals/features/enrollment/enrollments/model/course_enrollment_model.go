// file: internals/features/enrollment/enrollments/model/course_enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseEnrollmentModel: pendaftaran langsung oleh learner (actor_kind=student).
// Maksimal satu baris per (user, course). Kolom progress/is_completed adalah
// agregat cache yang HANYA ditulis oleh progress tracker.
type CourseEnrollmentModel struct {
	CourseEnrollmentID       uuid.UUID `gorm:"column:course_enrollment_id;type:uuid;primaryKey" json:"course_enrollment_id"`
	CourseEnrollmentUserID   uuid.UUID `gorm:"column:course_enrollment_user_id;type:uuid;not null;uniqueIndex:uq_course_enrollments_user_course,priority:1" json:"course_enrollment_user_id"`
	CourseEnrollmentCourseID uuid.UUID `gorm:"column:course_enrollment_course_id;type:uuid;not null;uniqueIndex:uq_course_enrollments_user_course,priority:2" json:"course_enrollment_course_id"`

	CourseEnrollmentIsPaymentDone bool `gorm:"column:course_enrollment_is_payment_done;not null;default:false" json:"course_enrollment_is_payment_done"`

	CourseEnrollmentProgressPercent int  `gorm:"column:course_enrollment_progress_percent;not null;default:0" json:"course_enrollment_progress_percent"`
	CourseEnrollmentIsCompleted     bool `gorm:"column:course_enrollment_is_completed;not null;default:false" json:"course_enrollment_is_completed"`

	CourseEnrollmentCreatedAt time.Time `gorm:"column:course_enrollment_created_at;autoCreateTime" json:"course_enrollment_created_at"`
	CourseEnrollmentUpdatedAt time.Time `gorm:"column:course_enrollment_updated_at;autoUpdateTime" json:"course_enrollment_updated_at"`
}

func (CourseEnrollmentModel) TableName() string { return "course_enrollments" }

func (m *CourseEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseEnrollmentID == uuid.Nil {
		m.CourseEnrollmentID = uuid.New()
	}
	return nil
}
