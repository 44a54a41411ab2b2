// file: internals/features/progress/progress/model/progress_record_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRecordModel: status completion satu content item (lesson ATAU test,
// tepat salah satu) untuk satu user. Maksimal satu record per (user, item) —
// dijaga unique index di store, bukan cuma cek aplikasi. Record di-update,
// tidak pernah dibuat ulang, dan core tidak pernah menghapusnya.
type ProgressRecordModel struct {
	ProgressID        uuid.UUID  `gorm:"column:progress_id;type:uuid;primaryKey" json:"progress_id"`
	ProgressUserID    uuid.UUID  `gorm:"column:progress_user_id;type:uuid;not null;index;uniqueIndex:uq_progress_user_lesson,priority:1;uniqueIndex:uq_progress_user_test,priority:1" json:"progress_user_id"`
	ProgressCourseID  uuid.UUID  `gorm:"column:progress_course_id;type:uuid;not null;index" json:"progress_course_id"`
	ProgressSectionID uuid.UUID  `gorm:"column:progress_section_id;type:uuid;not null;index" json:"progress_section_id"`
	ProgressLessonID  *uuid.UUID `gorm:"column:progress_lesson_id;type:uuid;uniqueIndex:uq_progress_user_lesson,priority:2" json:"progress_lesson_id,omitempty"`
	ProgressTestID    *uuid.UUID `gorm:"column:progress_test_id;type:uuid;uniqueIndex:uq_progress_user_test,priority:2" json:"progress_test_id,omitempty"`

	ProgressIsCompleted bool `gorm:"column:progress_is_completed;not null;default:false" json:"progress_is_completed"`

	ProgressCreatedAt time.Time `gorm:"column:progress_created_at;autoCreateTime" json:"progress_created_at"`
	ProgressUpdatedAt time.Time `gorm:"column:progress_updated_at;autoUpdateTime" json:"progress_updated_at"`
}

func (ProgressRecordModel) TableName() string { return "progress_records" }

func (m *ProgressRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgressID == uuid.Nil {
		m.ProgressID = uuid.New()
	}
	return m.ValidateShape()
}

// ValidateShape: tepat satu dari lesson_id/test_id terisi.
func (m *ProgressRecordModel) ValidateShape() error {
	hasLesson := m.ProgressLessonID != nil && *m.ProgressLessonID != uuid.Nil
	hasTest := m.ProgressTestID != nil && *m.ProgressTestID != uuid.Nil
	if hasLesson == hasTest {
		return errors.New("progress record harus menunjuk tepat satu content item (lesson atau test)")
	}
	return nil
}
