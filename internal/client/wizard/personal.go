package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/beswanhub/beswan-cli/internal/client/models"
)

// Indonesian mobile numbers: 08, 628 or +628 prefixes, 10 to 13 digits total.
var mobilePattern = regexp.MustCompile(`^(\+62|62|0)8[0-9]{7,11}$`)

type fieldRule struct {
	field   string
	value   string
	tag     string
	message string
}

// personalRules lists the PersonalInfo checks in reporting order. Validation
// stops at the first violation; only that field's message is surfaced.
func personalRules(p models.PersonalInfo) []fieldRule {
	return []fieldRule{
		{"fullName", p.FullName, "required", "full name is required"},
		{"email", p.Email, "required,email", "a valid email address is required"},
		{"phone", p.Phone, "required,idmobile", "a valid Indonesian mobile number is required"},
		{"studentId", p.StudentID, "required,len=13,numeric", "student ID (NIM) must be exactly 13 digits"},
		{"nationalId", p.NationalID, "required,len=16,numeric", "national ID (NIK) must be exactly 16 digits"},
		{"university", p.University, "required", "university is required"},
		{"major", p.Major, "required", "major is required"},
		{"gpa", p.GPA, "required,gparange", "GPA must be a number between 0 and 4"},
		{"age", p.Age, "required,agerange", "age must be a whole number between 15 and 40"},
		{"category", p.Category, "required", "scholarship category is required"},
	}
}

func newValidator() *validator.Validate {
	vd := validator.New()
	// RegisterValidation only errors on an empty tag name.
	_ = vd.RegisterValidation("idmobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = vd.RegisterValidation("gparange", func(fl validator.FieldLevel) bool {
		v, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && v >= 0 && v <= 4
	})
	_ = vd.RegisterValidation("agerange", func(fl validator.FieldLevel) bool {
		v, err := strconv.Atoi(fl.Field().String())
		return err == nil && v >= 15 && v <= 40
	})
	return vd
}

// validatePersonal checks the rules in order and reports exactly the first
// violation as a ValidationError.
func (c *Controller) validatePersonal() error {
	for _, rule := range personalRules(c.form.Personal) {
		if err := c.validate.Var(strings.TrimSpace(rule.value), rule.tag); err != nil {
			return &ValidationError{Field: rule.field, Message: rule.message}
		}
	}
	return nil
}

// MissingRequired returns the required document requirements whose slots are
// not satisfied, in requirement order. The submission orchestrator re-runs
// this defensively at submit time since staged files can expire between
// steps.
func MissingRequired(form *models.ApplicationForm, reqs []models.DocumentRequirement) []models.DocumentRequirement {
	var missing []models.DocumentRequirement
	for _, r := range reqs {
		if !r.Required {
			continue
		}
		if !form.Slots[r.Key].Satisfied(r.Kind) {
			missing = append(missing, r)
		}
	}
	return missing
}

// validateDocuments collects every missing required document into one
// combined message, unlike the personal step which stops at the first
// failure.
func (c *Controller) validateDocuments() error {
	missing := MissingRequired(c.form, c.reqs)
	if len(missing) == 0 {
		return nil
	}
	titles := make([]string, 0, len(missing))
	for _, r := range missing {
		titles = append(titles, r.Title)
	}
	return &ValidationError{
		Field:   "documents",
		Message: fmt.Sprintf("required documents are incomplete: %s", strings.Join(titles, ", ")),
	}
}
