package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/client/requirements"
	"github.com/beswanhub/beswan-cli/internal/client/submit"
	"github.com/beswanhub/beswan-cli/internal/client/upload"
	"github.com/beswanhub/beswan-cli/internal/client/wizard"
	"github.com/beswanhub/beswan-cli/internal/common"
)

// Apply runs the application wizard: personal info, documents, review,
// submit. Progress is drafted locally after every change, so quitting
// mid-way and running apply again resumes where the user left off.
func (a *App) Apply(ctx context.Context) error {
	win, err := a.registration.Window(ctx)
	if err != nil {
		return fmt.Errorf("loading registration window: %w", err)
	}

	app, err := a.api.MyApplication(ctx)
	if err != nil {
		return fmt.Errorf("checking existing application: %w", err)
	}
	if app != nil && app.Year == win.Year && app.Batch == win.Batch {
		printlnFn("You already applied for this cycle. Use 'status' to follow your selection progress.")
		return common.ErrAlreadyApplied
	}
	if !win.Open {
		return common.ErrRegistrationClosed
	}

	reqs := requirements.Resolve(win)
	form := models.NewApplicationForm(reqs)
	ctrl := wizard.NewController(form, reqs, a.uploader)

	if d := a.drafts.Restore(ctx); d != nil {
		resume, err := GetSimpleText(a.reader, "A saved draft was found. Resume it? (y/n)", os.Stdout)
		if err != nil {
			return err
		}
		if strings.EqualFold(resume, "y") {
			applyDraft(form, reqs, d)
			ctrl.SetStep(wizard.Step(d.Step))
		} else {
			a.drafts.Clear(ctx)
		}
	}

	for {
		var err error
		switch ctrl.Step() {
		case wizard.StepPersonalInfo:
			err = a.stepPersonal(ctx, ctrl)
		case wizard.StepDocuments:
			err = a.stepDocuments(ctx, ctrl)
		case wizard.StepReview:
			done, rerr := a.stepReview(ctx, ctrl, win)
			if rerr != nil {
				return rerr
			}
			if done {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) stepPersonal(ctx context.Context, ctrl *wizard.Controller) error {
	printlnFn("-- Step 1 of 3: personal information --")
	p := &ctrl.Form().Personal

	fields := []struct {
		prompt string
		value  *string
	}{
		{"Full name", &p.FullName},
		{"Email", &p.Email},
		{"Phone (Indonesian mobile)", &p.Phone},
		{"Student ID (NIM, 13 digits)", &p.StudentID},
		{"National ID (NIK, 16 digits)", &p.NationalID},
		{"University", &p.University},
		{"Major", &p.Major},
		{"GPA (0.00-4.00)", &p.GPA},
		{"Age (15-40)", &p.Age},
		{"Category", &p.Category},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.value, os.Stdout)
		if err != nil {
			return err
		}
		*f.value = v
	}

	a.saveDraft(ctrl)

	if err := ctrl.Next(); err != nil {
		printlnFn("Invalid input:", err)
	}
	return nil
}

func (a *App) stepDocuments(ctx context.Context, ctrl *wizard.Controller) error {
	printlnFn("-- Step 2 of 3: documents --")
	for i, r := range ctrl.Requirements() {
		slot := ctrl.Form().Slot(r.Key)
		printlnFn(fmt.Sprintf("%d. %s%s: %s", i+1, r.Title, requiredMark(r), slotSummary(slot, r.Kind)))
	}

	choice, err := GetSimpleText(a.reader,
		"Enter a document number to fill it, 'rm <number>' to clear one, 'next' or 'back'", os.Stdout)
	if err != nil {
		return err
	}

	switch {
	case choice == "next":
		if err := ctrl.Next(); err != nil {
			printlnFn("Cannot continue:", err)
		}
	case choice == "back":
		ctrl.Prev()
	case strings.HasPrefix(choice, "rm "):
		if r, ok := pickRequirement(ctrl.Requirements(), strings.TrimPrefix(choice, "rm ")); ok {
			a.clearSlot(ctx, ctrl, r)
		} else {
			printlnFn("No such document")
		}
	default:
		if r, ok := pickRequirement(ctrl.Requirements(), choice); ok {
			a.fillSlot(ctx, ctrl, r)
		} else {
			printlnFn("No such document")
		}
	}
	return nil
}

func (a *App) fillSlot(ctx context.Context, ctrl *wizard.Controller, r models.DocumentRequirement) {
	slot := ctrl.Form().Slot(r.Key)

	if r.Kind == models.DocumentKindURL {
		url, err := GetTextWithDefault(a.reader, r.Title+" (paste a link)", slot.URL, os.Stdout)
		if err != nil {
			return
		}
		slot.URL = strings.TrimSpace(url)
		a.saveDraft(ctrl)
		return
	}

	path, err := GetSimpleText(a.reader, r.Title+" (path to a PDF, JPG or PNG file, max 10 MB)", os.Stdout)
	if err != nil || path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		printlnFn("Cannot read file:", err)
		return
	}

	ref, err := a.uploader.Stage(ctx, r.Key, upload.File{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: upload.MimeTypeByExt(filepath.Ext(path)),
		Reader:   f,
	})
	if err != nil {
		printlnFn("Upload failed:", err)
		return
	}

	// Replacement drops the previous temp file; best effort, the backend
	// expires leftovers on its own.
	if slot.Staged != nil {
		a.uploader.Remove(ctx, slot.Staged.TempID)
	}
	slot.Staged = ref
	slot.Finalized = nil
	slot.LocalPath = path
	a.saveDraft(ctrl)
	printlnFn("Uploaded", ref.Name)
}

func (a *App) clearSlot(ctx context.Context, ctrl *wizard.Controller, r models.DocumentRequirement) {
	slot := ctrl.Form().Slot(r.Key)
	if slot.Staged != nil {
		a.uploader.Remove(ctx, slot.Staged.TempID)
	}
	slot.Reset()
	a.saveDraft(ctrl)
}

// stepReview shows the summary, asks for consent, and submits. It returns
// done=true when the wizard is finished, whether the submission succeeded or
// the user chose to leave.
func (a *App) stepReview(ctx context.Context, ctrl *wizard.Controller, win *models.RegistrationWindow) (bool, error) {
	printlnFn("-- Step 3 of 3: review and submit --")
	p := ctrl.Form().Personal
	printlnFn(fmt.Sprintf("Applicant: %s <%s>, NIM %s, %s / %s", p.FullName, p.Email, p.StudentID, p.University, p.Major))
	for _, r := range ctrl.Requirements() {
		slot := ctrl.Form().Slot(r.Key)
		line := fmt.Sprintf("  %s: %s", r.Title, slotSummary(slot, r.Kind))
		if link := a.previewLink(slot); link != "" {
			line += fmt.Sprintf(" (preview: %s)", link)
		}
		printlnFn(line)
	}

	answer, err := GetSimpleText(a.reader,
		"I agree that the submitted data is true and final (y = agree and submit, n = go back, q = quit)", os.Stdout)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "n":
		ctrl.Prev()
		return false, nil
	case "q":
		a.saveDraft(ctrl)
		printlnFn("Your progress is saved. Run 'apply' again to continue.")
		return true, nil
	case "y":
	default:
		return false, nil
	}

	ctrl.Form().Agree = true
	orch := submit.NewOrchestrator(a.api, a.drafts, a.log)
	rec, err := orch.Submit(ctx, ctrl, win)
	if err != nil {
		ctrl.Form().Agree = false
		// The draft now carries any references finalized before the
		// failure, so neither an in-session nor a later retry re-uploads.
		a.saveDraft(ctrl)

		if recoverableSubmitErr(err) {
			printlnFn(err.Error())
			return false, nil
		}
		return false, err
	}

	a.registration.Invalidate()
	printlnFn("Application submitted! Your application id is", rec.ID)
	printlnFn("Use 'status' to follow your selection progress.")
	return true, nil
}

// recoverableSubmitErr reports whether a submission failure should keep the
// user inside the wizard: validation and finalize failures send them back to
// the step needing correction, and a failed final submit call stays on
// Review so a retry re-sends only the submit request.
func recoverableSubmitErr(err error) bool {
	var fe *submit.FinalizeError
	var se *submit.SubmitError
	var ve *wizard.ValidationError
	return errors.As(err, &fe) || errors.As(err, &se) || errors.As(err, &ve)
}

func (a *App) saveDraft(ctrl *wizard.Controller) {
	a.drafts.Save(draftFromForm(ctrl))
}

// previewLink returns a URL the user can open to inspect the slot's current
// file. The server-provided link wins; when it is absent the link is derived
// from the reference id.
func (a *App) previewLink(s *models.DocumentSlot) string {
	switch {
	case s == nil:
		return ""
	case s.Finalized != nil:
		if s.Finalized.PreviewURL != "" {
			return s.Finalized.PreviewURL
		}
		return upload.FilePreviewURL(a.config.APIBaseURL, s.Finalized.FileID)
	case s.Staged != nil:
		if s.Staged.PreviewURL != "" {
			return s.Staged.PreviewURL
		}
		return upload.TempPreviewURL(a.config.APIBaseURL, s.Staged.TempID)
	}
	return ""
}

func requiredMark(r models.DocumentRequirement) string {
	if r.Required {
		return " (required)"
	}
	return " (optional)"
}

func slotSummary(s *models.DocumentSlot, kind models.DocumentKind) string {
	switch {
	case kind == models.DocumentKindURL && strings.TrimSpace(s.URL) != "":
		return s.URL
	case s.Finalized != nil:
		return s.Finalized.Name + " (uploaded)"
	case s.Staged != nil:
		return s.Staged.Name + " (staged)"
	default:
		return "-"
	}
}

func pickRequirement(reqs []models.DocumentRequirement, input string) (models.DocumentRequirement, bool) {
	input = strings.TrimSpace(input)
	for i, r := range reqs {
		if input == fmt.Sprint(i+1) || input == r.Key {
			return r, true
		}
	}
	return models.DocumentRequirement{}, false
}

// draftFromForm projects wizard state into the persisted draft shape.
// Consent and raw file bytes never make it in; staged uploads are kept as
// metadata so a resumed session can reuse the temp references.
func draftFromForm(ctrl *wizard.Controller) models.FormDraft {
	form := ctrl.Form()
	p := form.Personal

	fields := map[string]any{
		"fullName":   p.FullName,
		"email":      p.Email,
		"phone":      p.Phone,
		"studentId":  p.StudentID,
		"nationalId": p.NationalID,
		"university": p.University,
		"major":      p.Major,
		"gpa":        p.GPA,
		"age":        p.Age,
		"category":   p.Category,
	}

	d := models.FormDraft{
		Form:        fields,
		Step:        int(ctrl.Step()),
		StagedFiles: make(map[string]models.StagedFileMeta),
	}

	for _, r := range ctrl.Requirements() {
		slot := form.Slot(r.Key)
		if r.Kind == models.DocumentKindURL {
			if v := strings.TrimSpace(slot.URL); v != "" {
				d.Form[r.Key] = v
				if r.Key == "videoUrl" {
					d.VideoURL = v
				}
			}
			continue
		}
		if slot.Staged != nil {
			d.StagedFiles[r.Key] = models.StagedFileMeta{
				TempID:   slot.Staged.TempID,
				Name:     slot.Staged.Name,
				Size:     slot.Staged.Size,
				MimeType: slot.Staged.MimeType,
			}
		}
		if slot.Finalized != nil {
			if d.FinalizedFiles == nil {
				d.FinalizedFiles = make(map[string]models.FinalizedFileReference)
			}
			d.FinalizedFiles[r.Key] = *slot.Finalized
		}
	}
	return d
}

// applyDraft restores a saved draft onto a fresh form. Unknown keys are
// ignored, consent stays false, and staged references are rehydrated from
// metadata only.
func applyDraft(form *models.ApplicationForm, reqs []models.DocumentRequirement, d *models.FormDraft) {
	p := &form.Personal
	fields := map[string]*string{
		"fullName":   &p.FullName,
		"email":      &p.Email,
		"phone":      &p.Phone,
		"studentId":  &p.StudentID,
		"nationalId": &p.NationalID,
		"university": &p.University,
		"major":      &p.Major,
		"gpa":        &p.GPA,
		"age":        &p.Age,
		"category":   &p.Category,
	}
	for key, dst := range fields {
		if v, ok := d.Form[key].(string); ok {
			*dst = v
		}
	}

	for _, r := range reqs {
		slot := form.Slot(r.Key)
		if r.Kind == models.DocumentKindURL {
			if v, ok := d.Form[r.Key].(string); ok && strings.TrimSpace(v) != "" {
				slot.URL = strings.TrimSpace(v)
			} else if r.Key == "videoUrl" && d.VideoURL != "" {
				slot.URL = d.VideoURL
			}
			continue
		}
		if ref, ok := d.FinalizedFiles[r.Key]; ok && ref.FileID != "" {
			slot.Finalized = &ref
			continue
		}
		if meta, ok := d.StagedFiles[r.Key]; ok && meta.TempID != "" {
			slot.Staged = &models.StagedFileReference{
				TempID:   meta.TempID,
				Name:     meta.Name,
				Size:     meta.Size,
				MimeType: meta.MimeType,
			}
		}
	}
}
