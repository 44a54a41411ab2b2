package constants

import "fmt"

// Actor kind menentukan varian enrollment yang dipakai (lihat fitur enrollment).
// Nilainya dibawa di JWT claim "actor_kind" dan tidak pernah di-derive ulang.
const (
	ActorStudent = "student" // pendaftaran langsung oleh learner
	ActorCompany = "company" // akses yang di-assign oleh perusahaan
)

func ValidActorKind(kind string) bool {
	return kind == ActorStudent || kind == ActorCompany
}

// Role global untuk guard route admin/instruktur.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleUser       = "user"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess      = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyInstructorsCanAccess = "❌ Hanya instruktur atau admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}
