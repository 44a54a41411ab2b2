// file: internals/features/certificate/certificates/dto/certificate_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	certModel "kursusku_backend/internals/features/certificate/certificates/model"
)

/* ==========================================================================================
   REQUEST — upsert template per course (admin)
========================================================================================== */

type UpsertCertificateTemplateRequest struct {
	CertificateTemplateCourseID    uuid.UUID `json:"certificate_template_course_id" validate:"required"`
	CertificateTemplateTitle       string    `json:"certificate_template_title" validate:"required"`
	CertificateTemplateDescription string    `json:"certificate_template_description" validate:"omitempty"`
	CertificateTemplateURL         string    `json:"certificate_template_url" validate:"omitempty,url"`
}

func (r *UpsertCertificateTemplateRequest) ToModel() *certModel.CertificateTemplateModel {
	return &certModel.CertificateTemplateModel{
		CertificateTemplateCourseID:    r.CertificateTemplateCourseID,
		CertificateTemplateTitle:       r.CertificateTemplateTitle,
		CertificateTemplateDescription: r.CertificateTemplateDescription,
		CertificateTemplateURL:         r.CertificateTemplateURL,
	}
}

/* ==========================================================================================
   RESPONSE — verifikasi publik.
   Hanya field snapshot yang memang tercetak di sertifikat; tidak ada data
   user lain yang bocor.
========================================================================================== */

type VerifyCertificateResponse struct {
	IsValid                    bool       `json:"is_valid"`
	CertificateNumber          string     `json:"certificate_number"`
	CertificateIssueDate       time.Time  `json:"certificate_issue_date"`
	CertificateHolderName      string     `json:"certificate_holder_name"`
	CertificateHolderBirthDate *time.Time `json:"certificate_holder_birth_date,omitempty"`
	CertificateCourseTitle     string     `json:"certificate_course_title"`
	CertificateCourseStartedAt time.Time  `json:"certificate_course_started_at"`
	CertificateCourseEndedAt   time.Time  `json:"certificate_course_ended_at"`
}

func FromModelVerify(m *certModel.CertificateModel) VerifyCertificateResponse {
	return VerifyCertificateResponse{
		IsValid:                    true,
		CertificateNumber:          m.CertificateNumber,
		CertificateIssueDate:       m.CertificateIssueDate,
		CertificateHolderName:      m.CertificateHolderName,
		CertificateHolderBirthDate: m.CertificateHolderBirthDate,
		CertificateCourseTitle:     m.CertificateCourseTitle,
		CertificateCourseStartedAt: m.CertificateCourseStartedAt,
		CertificateCourseEndedAt:   m.CertificateCourseEndedAt,
	}
}
