// file: internals/features/enrollment/enrollments/dto/enrollment_dto.go
package dto

import (
	"github.com/google/uuid"

	enrollModel "kursusku_backend/internals/features/enrollment/enrollments/model"
)

/* ==========================================================================================
   REQUEST — admin
========================================================================================== */

type CreateCourseEnrollmentRequest struct {
	CourseEnrollmentUserID        uuid.UUID `json:"course_enrollment_user_id" validate:"required"`
	CourseEnrollmentCourseID      uuid.UUID `json:"course_enrollment_course_id" validate:"required"`
	CourseEnrollmentIsPaymentDone bool      `json:"course_enrollment_is_payment_done"`
}

func (r *CreateCourseEnrollmentRequest) ToModel() *enrollModel.CourseEnrollmentModel {
	return &enrollModel.CourseEnrollmentModel{
		CourseEnrollmentUserID:        r.CourseEnrollmentUserID,
		CourseEnrollmentCourseID:      r.CourseEnrollmentCourseID,
		CourseEnrollmentIsPaymentDone: r.CourseEnrollmentIsPaymentDone,
	}
}

type CreateCompanyEnrollmentRequest struct {
	CompanyEnrollmentCompanyID     uuid.UUID `json:"company_enrollment_company_id" validate:"required"`
	CompanyEnrollmentUserID        uuid.UUID `json:"company_enrollment_user_id" validate:"required"`
	CompanyEnrollmentCourseID      uuid.UUID `json:"company_enrollment_course_id" validate:"required"`
	CompanyEnrollmentIsPaymentDone bool      `json:"company_enrollment_is_payment_done"`
}

func (r *CreateCompanyEnrollmentRequest) ToModel() *enrollModel.CompanyEnrollmentModel {
	return &enrollModel.CompanyEnrollmentModel{
		CompanyEnrollmentCompanyID:     r.CompanyEnrollmentCompanyID,
		CompanyEnrollmentUserID:        r.CompanyEnrollmentUserID,
		CompanyEnrollmentCourseID:      r.CompanyEnrollmentCourseID,
		CompanyEnrollmentIsPaymentDone: r.CompanyEnrollmentIsPaymentDone,
	}
}

type MarkPaymentDoneRequest struct {
	ActorKind string    `json:"actor_kind" validate:"required,oneof=student company"`
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
}
