// file: internals/helpers/errors.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Typed error taxonomy
   Dipakai lintas service supaya controller tinggal map ke HTTP.
=================================*/

type ErrorKind string

const (
	ErrKindNotFound             ErrorKind = "NOT_FOUND"
	ErrKindAccessDenied         ErrorKind = "ACCESS_DENIED"
	ErrKindPrerequisiteNotMet   ErrorKind = "PREREQUISITE_NOT_MET"
	ErrKindDuplicateAttempt     ErrorKind = "DUPLICATE_ATTEMPT"
	ErrKindAlreadyIssued        ErrorKind = "ALREADY_ISSUED"
	ErrKindAlreadyGraded        ErrorKind = "ALREADY_GRADED"
	ErrKindInvalidQuestion      ErrorKind = "INVALID_QUESTION"
	ErrKindInvalidGradingTarget ErrorKind = "INVALID_GRADING_TARGET"
	ErrKindMarksExceeded        ErrorKind = "MARKS_EXCEEDED"
	ErrKindTemplateNotFound     ErrorKind = "TEMPLATE_NOT_FOUND"
	ErrKindInvariantViolation   ErrorKind = "INVARIANT_VIOLATION"
	ErrKindBadRequest           ErrorKind = "BAD_REQUEST"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrKindNotFound, ErrKindTemplateNotFound:
		return fiber.StatusNotFound
	case ErrKindAccessDenied:
		return fiber.StatusForbidden
	case ErrKindDuplicateAttempt, ErrKindAlreadyIssued, ErrKindAlreadyGraded, ErrKindPrerequisiteNotMet:
		return fiber.StatusConflict
	case ErrKindInvalidQuestion, ErrKindInvalidGradingTarget, ErrKindMarksExceeded,
		ErrKindInvariantViolation, ErrKindBadRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// JsonAppError menterjemahkan error service ke envelope standar.
// *AppError → status + error_code per kind; *fiber.Error lewat apa adanya;
// selain itu 500 tanpa bocorin detail internal.
func JsonAppError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.HTTPStatus()).JSON(ErrorResponse{
			Success:   false,
			Message:   appErr.Message,
			ErrorCode: string(appErr.Kind),
			Details:   appErr.Details,
		})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// IsUniqueViolation mendeteksi pelanggaran unique constraint tanpa import
// driver tertentu: Postgres ("duplicate key ... unique constraint") maupun
// SQLite ("UNIQUE constraint failed") kena oleh cek substring.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
