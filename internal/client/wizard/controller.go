// Package wizard owns the application form's step state machine:
// PersonalInfo, Documents, then Review, linear, with per-step validation on
// every forward transition.
package wizard

import (
	"github.com/go-playground/validator/v10"

	"github.com/beswanhub/beswan-cli/internal/client/models"
)

// Step is the wizard's position.
type Step int

const (
	StepPersonalInfo Step = 0
	StepDocuments    Step = 1
	StepReview       Step = 2
)

// Uploader reports whether a staging upload is outstanding. Forward
// transitions are blocked while one is, so the Documents step can't be left
// in an inconsistent state.
type Uploader interface {
	InFlight() bool
}

// Controller drives the multi-step application form.
type Controller struct {
	form     *models.ApplicationForm
	reqs     []models.DocumentRequirement
	uploader Uploader
	validate *validator.Validate
	step     Step
}

// NewController returns a controller at the PersonalInfo step.
func NewController(form *models.ApplicationForm, reqs []models.DocumentRequirement, uploader Uploader) *Controller {
	return &Controller{
		form:     form,
		reqs:     reqs,
		uploader: uploader,
		validate: newValidator(),
	}
}

// Form exposes the wizard's form state.
func (c *Controller) Form() *models.ApplicationForm { return c.form }

// Requirements exposes the document requirements the controller validates
// against.
func (c *Controller) Requirements() []models.DocumentRequirement { return c.reqs }

// Step returns the current step index.
func (c *Controller) Step() Step { return c.step }

// SetStep forces the step, clamped to the valid range. Used when restoring a
// draft and when the orchestrator sends the user back to Documents.
func (c *Controller) SetStep(s Step) {
	if s < StepPersonalInfo {
		s = StepPersonalInfo
	}
	if s > StepReview {
		s = StepReview
	}
	c.step = s
}

// Next validates the current step and advances on success. From Review it is
// a no-op: the consent checkbox is checked at submit time, not here.
func (c *Controller) Next() error {
	if c.uploader != nil && c.uploader.InFlight() {
		return &ValidationError{Field: "documents", Message: "please wait for the file upload to finish"}
	}

	switch c.step {
	case StepPersonalInfo:
		if err := c.validatePersonal(); err != nil {
			return err
		}
		c.step = StepDocuments
	case StepDocuments:
		if err := c.validateDocuments(); err != nil {
			return err
		}
		c.step = StepReview
	case StepReview:
		// Last step; submission is a separate action.
	}
	return nil
}

// Prev steps back without validation, flooring at the first step.
func (c *Controller) Prev() {
	if c.step > StepPersonalInfo {
		c.step--
	}
}
