package models

// PersonalInfo holds the wizard's first-step fields. Field order matters:
// step validation checks fields in declaration order and reports only the
// first violation.
type PersonalInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	StudentID  string `json:"studentId"`
	NationalID string `json:"nationalId"`
	University string `json:"university"`
	Major      string `json:"major"`
	GPA        string `json:"gpa"`
	Age        string `json:"age"`
	Category   string `json:"category"`
}

// ApplicationForm is the full in-memory state of the application wizard.
type ApplicationForm struct {
	Personal PersonalInfo
	Slots    map[string]*DocumentSlot

	// Agree is the consent checkbox. It is checked at submit time, never
	// persisted, and always restored as false.
	Agree bool
}

// NewApplicationForm returns an empty form with slots for the given
// requirements.
func NewApplicationForm(reqs []DocumentRequirement) *ApplicationForm {
	slots := make(map[string]*DocumentSlot, len(reqs))
	for _, r := range reqs {
		slots[r.Key] = &DocumentSlot{}
	}
	return &ApplicationForm{Slots: slots}
}

// Slot returns the slot for key, creating it if the form has none yet.
func (f *ApplicationForm) Slot(key string) *DocumentSlot {
	if f.Slots == nil {
		f.Slots = make(map[string]*DocumentSlot)
	}
	s, ok := f.Slots[key]
	if !ok {
		s = &DocumentSlot{}
		f.Slots[key] = s
	}
	return s
}

// StagedFileMeta is the draft-persisted projection of a StagedFileReference:
// metadata only, never raw bytes.
type StagedFileMeta struct {
	TempID   string `json:"tempId"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// FormDraft is the persisted subset of wizard state. Form holds scalar field
// values only: the draft sanitizer drops secrets, consent flags and anything
// non-serializable before this struct is written. FinalizedFiles keeps the
// permanent references of slots already promoted by a finalize whose final
// submit failed, so a retry in a later session reuses them instead of
// re-uploading.
type FormDraft struct {
	Form           map[string]any                    `json:"form"`
	Step           int                               `json:"step"`
	StagedFiles    map[string]StagedFileMeta         `json:"stagedFiles"`
	FinalizedFiles map[string]FinalizedFileReference `json:"finalizedFiles,omitempty"`
	VideoURL       string                            `json:"videoUrl,omitempty"`
	SavedAt        int64                             `json:"savedAt"`
}
