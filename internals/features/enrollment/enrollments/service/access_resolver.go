// file: internals/features/enrollment/enrollments/service/access_resolver.go
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"

	"kursusku_backend/internals/constants"
	enrollModel "kursusku_backend/internals/features/enrollment/enrollments/model"
	helper "kursusku_backend/internals/helpers"
)

/* =============================================================================
   Access resolver
   Satu relasi logis (user punya akses ke course) dengan dua varian backing:
   pendaftaran langsung (student) atau assignment perusahaan (company).
   Varian dipilih oleh actor_kind yang dikirim caller — TIDAK ada fallback
   ke varian lain kalau tidak ketemu.
============================================================================= */

// EnrollmentProof: bukti akses yang dikonsumsi progress tracker & certification gate.
type EnrollmentProof struct {
	EnrolledAt      time.Time `json:"enrolled_at"`
	PaymentDone     bool      `json:"payment_done"`
	ProgressPercent int       `json:"progress_percent"`
	IsCompleted     bool      `json:"is_completed"`
}

type accessSource interface {
	find(tx *gorm.DB, userID, courseID uuid.UUID) (*EnrollmentProof, error)
}

type directSource struct{}

func (directSource) find(tx *gorm.DB, userID, courseID uuid.UUID) (*EnrollmentProof, error) {
	var row enrollModel.CourseEnrollmentModel
	err := tx.
		Where("course_enrollment_user_id = ? AND course_enrollment_course_id = ?", userID, courseID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Enrollment tidak ditemukan")
		}
		return nil, err
	}
	return &EnrollmentProof{
		EnrolledAt:      row.CourseEnrollmentCreatedAt,
		PaymentDone:     row.CourseEnrollmentIsPaymentDone,
		ProgressPercent: row.CourseEnrollmentProgressPercent,
		IsCompleted:     row.CourseEnrollmentIsCompleted,
	}, nil
}

type sponsoredSource struct{}

func (sponsoredSource) find(tx *gorm.DB, userID, courseID uuid.UUID) (*EnrollmentProof, error) {
	var row enrollModel.CompanyEnrollmentModel
	err := tx.
		Where("company_enrollment_user_id = ? AND company_enrollment_course_id = ?", userID, courseID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Enrollment tidak ditemukan")
		}
		return nil, err
	}
	return &EnrollmentProof{
		EnrolledAt:      row.CompanyEnrollmentCreatedAt,
		PaymentDone:     row.CompanyEnrollmentIsPaymentDone,
		ProgressPercent: row.CompanyEnrollmentProgressPercent,
		IsCompleted:     row.CompanyEnrollmentIsCompleted,
	}, nil
}

func sourceFor(actorKind string) (accessSource, error) {
	switch actorKind {
	case constants.ActorStudent:
		return directSource{}, nil
	case constants.ActorCompany:
		return sponsoredSource{}, nil
	default:
		return nil, helper.NewAppError(helper.ErrKindBadRequest, "actor_kind tidak dikenali").
			WithDetails(map[string]any{"actor_kind": actorKind})
	}
}

// ResolveAccess mengembalikan bukti enrollment untuk varian yang sesuai
// actor_kind. Baris payment-incomplete tetap dikembalikan (caller read-only
// boleh menampilkannya); keputusan gating memakai RequireValidAccess.
func ResolveAccess(tx *gorm.DB, userID, courseID uuid.UUID, actorKind string) (*EnrollmentProof, error) {
	src, err := sourceFor(actorKind)
	if err != nil {
		return nil, err
	}
	return src.find(tx, userID, courseID)
}

// RequireValidAccess: untuk keputusan gating, enrollment yang belum lunas
// diperlakukan sama dengan tidak ada.
func RequireValidAccess(tx *gorm.DB, userID, courseID uuid.UUID, actorKind string) (*EnrollmentProof, error) {
	proof, err := ResolveAccess(tx, userID, courseID, actorKind)
	if err != nil {
		var appErr *helper.AppError
		if errors.As(err, &appErr) && appErr.Kind == helper.ErrKindNotFound {
			return nil, helper.NewAppError(helper.ErrKindAccessDenied, "Anda belum terdaftar di course ini")
		}
		return nil, err
	}
	if !proof.PaymentDone {
		return nil, helper.NewAppError(helper.ErrKindAccessDenied, "Pembayaran course belum selesai")
	}
	return proof, nil
}

// ApplyAggregates menulis agregat progress (percent & is_completed) ke baris
// enrollment (user, course) di KEDUA varian yang ada. Hanya progress tracker
// yang boleh memanggil ini, dan selalu di dalam transaction mutasi yang sama
// supaya agregat tidak pernah stale.
func ApplyAggregates(tx *gorm.DB, userID, courseID uuid.UUID, percent int, isCompleted bool) error {
	if err := tx.Model(&enrollModel.CourseEnrollmentModel{}).
		Where("course_enrollment_user_id = ? AND course_enrollment_course_id = ?", userID, courseID).
		Updates(map[string]any{
			"course_enrollment_progress_percent": percent,
			"course_enrollment_is_completed":     isCompleted,
		}).Error; err != nil {
		return err
	}
	return tx.Model(&enrollModel.CompanyEnrollmentModel{}).
		Where("company_enrollment_user_id = ? AND company_enrollment_course_id = ?", userID, courseID).
		Updates(map[string]any{
			"company_enrollment_progress_percent": percent,
			"company_enrollment_is_completed":     isCompleted,
		}).Error
}
