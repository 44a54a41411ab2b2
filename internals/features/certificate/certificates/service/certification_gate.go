// file: internals/features/certificate/certificates/service/certification_gate.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certModel "kursusku_backend/internals/features/certificate/certificates/model"
	courseModel "kursusku_backend/internals/features/course/courses/model"
	lessonModel "kursusku_backend/internals/features/course/lessons/model"
	testModel "kursusku_backend/internals/features/course/tests/model"
	enrollService "kursusku_backend/internals/features/enrollment/enrollments/service"
	progressService "kursusku_backend/internals/features/progress/progress/service"
	userModel "kursusku_backend/internals/features/users/users/model"
	helper "kursusku_backend/internals/helpers"
)

/* =============================================================================
   Certification gate
   Eligibility = enrollment lunas + completion 100% + waiting window lewat +
   template ada + belum pernah terbit. Issue TIDAK percaya hasil getEligibility
   sebelumnya: semua syarat divalidasi ulang di dalam satu transaction supaya
   tidak ada race read-then-write.
============================================================================= */

// CertificateWaitingDays: jeda minimal sejak tanggal enrollment sebelum
// sertifikat boleh terbit. Satu konstanta dipakai path status maupun path
// issue supaya keduanya tidak mungkin beda pendapat.
const CertificateWaitingDays = 5

const (
	EligibilityIssued            = "ISSUED"
	EligibilityPendingCompletion = "PENDING_COMPLETION"
	EligibilityWaitingPeriod     = "WAITING_PERIOD"
	EligibilityReady             = "READY"
)

type Eligibility struct {
	Status        string     `json:"status"`
	Message       string     `json:"message"`
	EligibleAt    *time.Time `json:"eligible_at,omitempty"`
	RemainingDays int        `json:"remaining_days,omitempty"`
}

// GetEligibility mengevaluasi status dengan urutan precedence tetap:
// ISSUED > PENDING_COMPLETION > WAITING_PERIOD > READY.
func GetEligibility(db *gorm.DB, userID, courseID uuid.UUID, actorKind string) (*Eligibility, error) {
	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Course tidak ditemukan")
		}
		return nil, err
	}

	// Sudah terbit → short-circuit semua pengecekan lain.
	var issued int64
	if err := db.Model(&certModel.CertificateModel{}).
		Where("certificate_user_id = ? AND certificate_course_id = ?", userID, courseID).
		Count(&issued).Error; err != nil {
		return nil, err
	}
	if issued > 0 {
		return &Eligibility{Status: EligibilityIssued, Message: "Sertifikat sudah terbit"}, nil
	}

	proof, err := enrollService.RequireValidAccess(db, userID, courseID, actorKind)
	if err != nil {
		return nil, err
	}

	agg, err := progressService.GetCourseProgress(db, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !agg.IsCompleted {
		return &Eligibility{
			Status:  EligibilityPendingCompletion,
			Message: fmt.Sprintf("Progress course baru %d%%, selesaikan dulu sampai 100%%", agg.Percentage),
		}, nil
	}

	eligibleAt := proof.EnrolledAt.AddDate(0, 0, CertificateWaitingDays)
	if now := time.Now(); now.Before(eligibleAt) {
		return &Eligibility{
			Status:        EligibilityWaitingPeriod,
			Message:       "Masa tunggu sejak enrollment belum selesai",
			EligibleAt:    &eligibleAt,
			RemainingDays: ceilDays(eligibleAt.Sub(now)),
		}, nil
	}

	return &Eligibility{Status: EligibilityReady, Message: "Sertifikat siap diterbitkan", EligibleAt: &eligibleAt}, nil
}

// IssueCertificate memvalidasi ulang SEMUA syarat eligibility di dalam satu
// transaction, lalu membekukan snapshot (nama holder, tanggal lahir, judul
// course, tanggal mulai/selesai course, nomor sertifikat) ke baris certificate.
func IssueCertificate(db *gorm.DB, userID, courseID uuid.UUID, actorKind string) (*certModel.CertificateModel, error) {
	var out *certModel.CertificateModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindNotFound, "Course tidak ditemukan")
			}
			return err
		}

		var issued int64
		if err := tx.Model(&certModel.CertificateModel{}).
			Where("certificate_user_id = ? AND certificate_course_id = ?", userID, courseID).
			Count(&issued).Error; err != nil {
			return err
		}
		if issued > 0 {
			return helper.NewAppError(helper.ErrKindAlreadyIssued, "Sertifikat untuk course ini sudah terbit")
		}

		proof, err := enrollService.RequireValidAccess(tx, userID, courseID, actorKind)
		if err != nil {
			return err
		}

		agg, err := progressService.GetCourseProgress(tx, userID, courseID)
		if err != nil {
			return err
		}
		if !agg.IsCompleted {
			return helper.NewAppError(helper.ErrKindPrerequisiteNotMet, "Course belum 100% selesai").
				WithDetails(map[string]any{"percentage": agg.Percentage})
		}

		eligibleAt := proof.EnrolledAt.AddDate(0, 0, CertificateWaitingDays)
		if now := time.Now(); now.Before(eligibleAt) {
			return helper.NewAppError(helper.ErrKindPrerequisiteNotMet, "Masa tunggu sejak enrollment belum selesai").
				WithDetails(map[string]any{
					"eligible_at":    eligibleAt,
					"remaining_days": ceilDays(eligibleAt.Sub(now)),
				})
		}

		var template certModel.CertificateTemplateModel
		if err := tx.First(&template, "certificate_template_course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindTemplateNotFound, "Course ini belum punya template sertifikat")
			}
			return err
		}

		var user userModel.UserModel
		if err := tx.First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewAppError(helper.ErrKindNotFound, "User tidak ditemukan")
			}
			return err
		}

		startedAt, endedAt, err := courseContentSpan(tx, courseID)
		if err != nil {
			return err
		}

		now := time.Now()
		cert := certModel.CertificateModel{
			CertificateUserID:          userID,
			CertificateCourseID:        courseID,
			CertificateTemplateID:      template.CertificateTemplateID,
			CertificateIssueDate:       now,
			CertificateHolderName:      user.UserFullName,
			CertificateHolderBirthDate: user.UserDateOfBirth,
			CertificateCourseTitle:     course.CourseTitle,
			CertificateCourseStartedAt: startedAt,
			CertificateCourseEndedAt:   endedAt,
		}

		// Nomor = komponen waktu + suffix random; tidak dijamin unik secara
		// matematis. Regenerate dulu kalau nomornya sudah kepakai (retry
		// terbatas), lalu unique index di store yang jadi penjaga terakhir
		// untuk race yang lolos pengecekan ini.
		for i := 0; ; i++ {
			cert.CertificateNumber = generateCertificateNumber(now)
			var clash int64
			if err := tx.Model(&certModel.CertificateModel{}).
				Where("certificate_number = ?", cert.CertificateNumber).
				Count(&clash).Error; err != nil {
				return err
			}
			if clash == 0 {
				break
			}
			if i >= 3 {
				return fmt.Errorf("gagal generate nomor sertifikat unik setelah %d percobaan", i+1)
			}
		}

		if err := tx.Create(&cert).Error; err != nil {
			// issue paralel untuk (user, course) yang sama kalah race di sini
			if helper.IsUniqueViolation(err) {
				return helper.NewAppError(helper.ErrKindAlreadyIssued, "Sertifikat untuk course ini sudah terbit")
			}
			return err
		}

		out = &cert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyCertificate: lookup publik by nomor sertifikat untuk verifikasi pihak
// ketiga. Respons hanya berisi snapshot yang memang tercetak di sertifikat.
func VerifyCertificate(db *gorm.DB, certificateNumber string) (*certModel.CertificateModel, error) {
	var cert certModel.CertificateModel
	err := db.First(&cert, "certificate_number = ?", certificateNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewAppError(helper.ErrKindNotFound, "Sertifikat tidak ditemukan")
		}
		return nil, err
	}
	return &cert, nil
}

/* =============================================================================
   Internal
============================================================================= */

func ceilDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func generateCertificateNumber(now time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("CERT-%s-%s", now.UTC().Format("20060102150405"), hex.EncodeToString(buf))
}

// courseContentSpan: tanggal mulai = creation time lesson paling awal,
// tanggal selesai = paling akhir. Course tanpa lesson pakai rentang test;
// tanpa keduanya (tidak mungkin lolos completion check, tapi defensif) pakai
// waktu sekarang.
func courseContentSpan(tx *gorm.DB, courseID uuid.UUID) (time.Time, time.Time, error) {
	var lessons []lessonModel.LessonModel
	if err := tx.Where("lesson_course_id = ?", courseID).
		Order("lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(lessons) > 0 {
		return lessons[0].LessonCreatedAt, lessons[len(lessons)-1].LessonCreatedAt, nil
	}

	var tests []testModel.TestModel
	if err := tx.Where("test_course_id = ?", courseID).
		Order("test_created_at ASC").
		Find(&tests).Error; err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(tests) > 0 {
		return tests[0].TestCreatedAt, tests[len(tests)-1].TestCreatedAt, nil
	}

	now := time.Now()
	return now, now, nil
}
