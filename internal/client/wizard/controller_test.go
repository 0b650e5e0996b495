package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beswanhub/beswan-cli/internal/client/models"
)

type stubUploader struct{ busy bool }

func (s stubUploader) InFlight() bool { return s.busy }

func testRequirements() []models.DocumentRequirement {
	return []models.DocumentRequirement{
		{Key: "ktmKtp", Title: "KTM/KTP", Required: true, Kind: models.DocumentKindFile},
		{Key: "videoUrl", Title: "Video Profil", Required: true, Kind: models.DocumentKindURL},
		{Key: "sertifikat", Title: "Sertifikat Prestasi", Required: false, Kind: models.DocumentKindFile},
	}
}

func validPersonal() models.PersonalInfo {
	return models.PersonalInfo{
		FullName:   "Ani Budiarti",
		Email:      "ani@example.org",
		Phone:      "081234567890",
		StudentID:  "2010631250037",
		NationalID: "3215012506030001",
		University: "Universitas Singaperbangsa",
		Major:      "Informatika",
		GPA:        "3.5",
		Age:        "21",
		Category:   "reguler",
	}
}

func newTestController(busy bool) *Controller {
	form := models.NewApplicationForm(testRequirements())
	form.Personal = validPersonal()
	return NewController(form, testRequirements(), stubUploader{busy: busy})
}

func TestNext_PersonalInfo_ReportsOnlyFirstViolation(t *testing.T) {
	c := newTestController(false)
	c.Form().Personal.FullName = ""
	c.Form().Personal.Email = ""

	err := c.Next()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fullName", verr.Field)
	assert.NotContains(t, verr.Message, "email")
	assert.Equal(t, StepPersonalInfo, c.Step(), "step must not advance on a violation")
}

func TestNext_PersonalInfo_FieldFormats(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *models.PersonalInfo)
		wantField string
	}{
		{"bad email", func(p *models.PersonalInfo) { p.Email = "not-an-email" }, "email"},
		{"short student id", func(p *models.PersonalInfo) { p.StudentID = "12345" }, "studentId"},
		{"non-numeric student id", func(p *models.PersonalInfo) { p.StudentID = "20106312500ab" }, "studentId"},
		{"short national id", func(p *models.PersonalInfo) { p.NationalID = "321501" }, "nationalId"},
		{"landline phone", func(p *models.PersonalInfo) { p.Phone = "0267123456" }, "phone"},
		{"gpa out of range", func(p *models.PersonalInfo) { p.GPA = "4.2" }, "gpa"},
		{"gpa not a number", func(p *models.PersonalInfo) { p.GPA = "tiga koma lima" }, "gpa"},
		{"age too low", func(p *models.PersonalInfo) { p.Age = "14" }, "age"},
		{"age not an integer", func(p *models.PersonalInfo) { p.Age = "21.5" }, "age"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(false)
			tc.mutate(&c.Form().Personal)

			err := c.Next()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Equal(t, StepPersonalInfo, c.Step())
		})
	}
}

func TestNext_PersonalInfo_ValidAdvances(t *testing.T) {
	c := newTestController(false)
	require.NoError(t, c.Next())
	assert.Equal(t, StepDocuments, c.Step())
}

func TestNext_PhoneVariantsAccepted(t *testing.T) {
	for _, phone := range []string{"081234567890", "6281234567890", "+6281234567890"} {
		c := newTestController(false)
		c.Form().Personal.Phone = phone
		require.NoError(t, c.Next(), "phone %s should be accepted", phone)
	}
}

func TestNext_Documents_CollectsAllMissingTitles(t *testing.T) {
	c := newTestController(false)
	c.SetStep(StepDocuments)

	err := c.Next()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "KTM/KTP")
	assert.Contains(t, verr.Message, "Video Profil")
	assert.NotContains(t, verr.Message, "Sertifikat", "optional documents are never reported")
	assert.Equal(t, StepDocuments, c.Step())
}

func TestNext_Documents_SatisfiedByStagedFileAndURL(t *testing.T) {
	c := newTestController(false)
	c.SetStep(StepDocuments)

	c.Form().Slot("ktmKtp").Staged = &models.StagedFileReference{TempID: "tmp-1"}
	c.Form().Slot("videoUrl").URL = "https://youtu.be/xyz"

	require.NoError(t, c.Next())
	assert.Equal(t, StepReview, c.Step())
}

func TestNext_Documents_SatisfiedByFinalizedFile(t *testing.T) {
	c := newTestController(false)
	c.SetStep(StepDocuments)

	c.Form().Slot("ktmKtp").Finalized = &models.FinalizedFileReference{FileID: "file-1"}
	c.Form().Slot("videoUrl").URL = "https://youtu.be/xyz"

	require.NoError(t, c.Next())
	assert.Equal(t, StepReview, c.Step())
}

func TestNext_Documents_WhitespaceURLDoesNotSatisfy(t *testing.T) {
	c := newTestController(false)
	c.SetStep(StepDocuments)

	c.Form().Slot("ktmKtp").Staged = &models.StagedFileReference{TempID: "tmp-1"}
	c.Form().Slot("videoUrl").URL = "   "

	err := c.Next()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Video Profil")
}

func TestNext_BlockedWhileUploadInFlight(t *testing.T) {
	c := newTestController(true)

	err := c.Next()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepPersonalInfo, c.Step())
}

func TestNext_ReviewIsTerminal(t *testing.T) {
	c := newTestController(false)
	c.SetStep(StepReview)

	require.NoError(t, c.Next())
	assert.Equal(t, StepReview, c.Step())
}

func TestPrev_FloorsAtFirstStep(t *testing.T) {
	c := newTestController(false)
	c.SetStep(StepReview)

	c.Prev()
	assert.Equal(t, StepDocuments, c.Step())
	c.Prev()
	assert.Equal(t, StepPersonalInfo, c.Step())
	c.Prev()
	assert.Equal(t, StepPersonalInfo, c.Step())
}

func TestSetStep_ClampsToValidRange(t *testing.T) {
	c := newTestController(false)

	c.SetStep(Step(7))
	assert.Equal(t, StepReview, c.Step())
	c.SetStep(Step(-3))
	assert.Equal(t, StepPersonalInfo, c.Step())
}
