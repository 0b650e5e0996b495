// Package models defines the scholarship application domain types shared by
// the client packages: the application record, registration window, document
// requirements, and staged/finalized file references.
package models

// AdministrationStatus is the backend's verdict on the administration
// (document review) stage.
type AdministrationStatus string

const (
	AdministrationPending  AdministrationStatus = "MENUNGGU_VERIFIKASI"
	AdministrationPassed   AdministrationStatus = "LOLOS_ADMINISTRASI"
	AdministrationRejected AdministrationStatus = "ADMINISTRASI_DITOLAK"
)

// InterviewStatus is the backend's verdict on the interview stage.
type InterviewStatus string

const (
	InterviewAwaitingSchedule InterviewStatus = "MENUNGGU_JADWAL"
	InterviewScheduled        InterviewStatus = "DIJADWALKAN"
	InterviewPassed           InterviewStatus = "LOLOS_WAWANCARA"
	InterviewFailed           InterviewStatus = "GAGAL_WAWANCARA"
)

// Decided reports whether the interview stage has reached a terminal verdict.
func (s InterviewStatus) Decided() bool {
	return s == InterviewPassed || s == InterviewFailed
}

// ApplicationRecord is the user's scholarship application as reported by the
// backend. The client only reads it; stage derivation never mutates it.
type ApplicationRecord struct {
	ID                   string               `json:"id"`
	Year                 int                  `json:"year"`
	Batch                int                  `json:"batch"`
	AdministrationStatus AdministrationStatus `json:"administrasiStatus"`
	InterviewStatus      InterviewStatus      `json:"interviewStatus"`
	CreatedAt            string               `json:"createdAt"`
}

// RegistrationWindow describes the current scholarship cycle: whether new
// applications may be submitted, and which cycle the user would be applying
// to. Documents, when non-empty, fully replaces the client's fallback
// requirement list (no merge).
type RegistrationWindow struct {
	Open      bool                  `json:"open"`
	Year      int                   `json:"year"`
	Batch     int                   `json:"batch"`
	Documents []DocumentRequirement `json:"documents"`
}
