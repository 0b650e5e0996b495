// Package submit orchestrates the final application submission: it promotes
// the staged files in one bulk finalize, maps the results back onto the
// form's document slots, and sends the application payload.
package submit

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/beswanhub/beswan-cli/internal/client/api"
	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/client/wizard"
	"github.com/beswanhub/beswan-cli/internal/logging"
)

// DraftStore is the slice of the draft store the orchestrator needs: it
// clears the draft once the application is accepted.
type DraftStore interface {
	Clear(ctx context.Context)
}

// Orchestrator runs the submission algorithm against the API.
type Orchestrator struct {
	api    api.Client
	drafts DraftStore
	log    logging.Logger
}

// NewOrchestrator returns an orchestrator bound to the API client and draft
// store.
func NewOrchestrator(c api.Client, drafts DraftStore, log logging.Logger) *Orchestrator {
	return &Orchestrator{api: c, drafts: drafts, log: log}
}

// Submit finalizes staged files and sends the application.
//
// Slot state is mutated as results come in: every file the backend reports
// as promoted is switched to its finalized reference immediately, even when
// a later step fails, so a retry never re-uploads work that already
// succeeded. Failed files are cleared back to "unselected" and the wizard is
// returned to the Documents step.
func (o *Orchestrator) Submit(ctx context.Context, c *wizard.Controller, win *models.RegistrationWindow) (*models.ApplicationRecord, error) {
	form := c.Form()
	reqs := c.Requirements()

	if c.Step() != wizard.StepReview {
		return nil, &wizard.ValidationError{Field: "step", Message: "finish the review step before submitting"}
	}
	if !form.Agree {
		return nil, &wizard.ValidationError{Field: "agree", Message: "you must accept the declaration before submitting"}
	}

	// Re-verify completeness rather than trusting the earlier step
	// transition: staged files can expire between steps.
	if missing := wizard.MissingRequired(form, reqs); len(missing) > 0 {
		c.SetStep(wizard.StepDocuments)
		titles := lo.Map(missing, func(r models.DocumentRequirement, _ int) string { return r.Title })
		return nil, &wizard.ValidationError{
			Field:   "documents",
			Message: fmt.Sprintf("required documents are incomplete: %s", strings.Join(titles, ", ")),
		}
	}

	folder := BuildFolderPath(form.Personal.Category, win.Year, form.Personal.StudentID, form.Personal.FullName)

	// Queue only slots that are staged but not yet finalized. Finalized
	// slots reuse their fileId; url slots go into the payload verbatim.
	keyByTemp := make(map[string]string)
	var queue []models.FinalizeItem
	for _, r := range reqs {
		slot := form.Slots[r.Key]
		if r.Kind != models.DocumentKindFile || slot == nil || slot.Finalized != nil || slot.Staged == nil {
			continue
		}
		queue = append(queue, models.FinalizeItem{TempID: slot.Staged.TempID, Folder: folder})
		keyByTemp[slot.Staged.TempID] = r.Key
	}

	if len(queue) > 0 {
		if err := o.finalize(ctx, c, queue, keyByTemp); err != nil {
			return nil, err
		}
	}

	req := &api.SubmitRequest{
		PersonalInfo: form.Personal,
		Files:        o.filesPayload(form, reqs),
		Agree:        form.Agree,
	}

	app, err := o.api.SubmitApplication(ctx, req)
	if err != nil {
		// Draft and finalized references stay put: retry re-sends only
		// this request.
		return nil, &SubmitError{Err: err}
	}

	o.drafts.Clear(ctx)
	o.log.Info(ctx, "application submitted", "applicationId", app.ID, "year", win.Year)
	return app, nil
}

// finalize runs the single bulk finalize call and maps per-tempId results
// back onto the form. Results are correlated by tempId; response order
// carries no meaning.
func (o *Orchestrator) finalize(ctx context.Context, c *wizard.Controller, queue []models.FinalizeItem, keyByTemp map[string]string) error {
	form := c.Form()

	res, err := o.api.FinalizeFiles(ctx, queue)
	if err != nil {
		// The whole call failed; nothing was promoted and every staged
		// reference is still valid for a retry.
		return fmt.Errorf("finalizing documents: %w", err)
	}

	for _, up := range res.Uploaded {
		key, ok := keyByTemp[up.TempID]
		if !ok {
			o.log.Warn(ctx, "finalize response carries unknown tempId", "tempId", up.TempID)
			continue
		}
		form.Slot(key).Promote(&models.FinalizedFileReference{
			FileID:     up.FileID,
			Name:       up.Name,
			URL:        up.URL,
			PreviewURL: up.PreviewURL,
		})
	}

	if len(res.Errors) == 0 {
		return nil
	}

	var titles []string
	for _, fe := range res.Errors {
		key, ok := keyByTemp[fe.TempID]
		if !ok {
			continue
		}
		// Force re-selection of exactly the failed files.
		form.Slot(key).Reset()
		req, found := lo.Find(c.Requirements(), func(r models.DocumentRequirement) bool { return r.Key == key })
		if found {
			titles = append(titles, req.Title)
		} else {
			titles = append(titles, key)
		}
		o.log.Warn(ctx, "document finalize failed", "key", key, "tempId", fe.TempID, "reason", fe.Reason)
	}

	c.SetStep(wizard.StepDocuments)
	return &FinalizeError{FailedTitles: titles}
}

// filesPayload resolves each requirement to its submitted value: the
// permanent fileId for file slots, the trimmed URL for url slots. Empty
// optional slots are omitted.
func (o *Orchestrator) filesPayload(form *models.ApplicationForm, reqs []models.DocumentRequirement) map[string]string {
	files := make(map[string]string)
	for _, r := range reqs {
		slot := form.Slots[r.Key]
		if slot == nil {
			continue
		}
		switch {
		case r.Kind == models.DocumentKindURL:
			if u := strings.TrimSpace(slot.URL); u != "" {
				files[r.Key] = u
			}
		case slot.Finalized != nil:
			files[r.Key] = slot.Finalized.FileID
		}
	}
	return files
}
