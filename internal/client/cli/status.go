package cli

import (
	"context"
	"fmt"

	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/client/selection"
)

// Status shows where the user's application stands in the selection flow.
// Passing the administration stage triggers a one-time congratulation; after
// it has been shown once, the view goes straight to the resolved stage.
func (a *App) Status(ctx context.Context) error {
	win, err := a.registration.Window(ctx)
	if err != nil {
		return fmt.Errorf("loading registration window: %w", err)
	}

	app, err := a.api.MyApplication(ctx)
	if err != nil {
		return fmt.Errorf("loading application: %w", err)
	}

	route := selection.Resolve(app, *win)
	switch route {
	case selection.RouteInfo:
		printlnFn("Registration is closed and you have no application on record.")

	case selection.RouteRegistration:
		printlnFn("Registration is open! Run 'apply' to start your application.")

	case selection.RouteAdministration:
		a.printAdministration(app)

	case selection.RouteInterview:
		if !a.celebrations.Seen(ctx, app.ID) {
			printlnFn("Congratulations! Your documents passed administrative verification.")
			a.celebrations.MarkSeen(ctx, app.ID)
		}
		a.printInterview(app)

	case selection.RouteAnnouncement:
		if !a.celebrations.Seen(ctx, app.ID) {
			printlnFn("Congratulations! Your documents passed administrative verification.")
			a.celebrations.MarkSeen(ctx, app.ID)
		}
		a.printAnnouncement(app)
	}
	return nil
}

func (a *App) printAdministration(app *models.ApplicationRecord) {
	printlnFn(fmt.Sprintf("Application %s (cycle %d, batch %d)", app.ID, app.Year, app.Batch))
	switch app.AdministrationStatus {
	case models.AdministrationPending:
		printlnFn("Stage: administration. Your documents are being verified.")
	case models.AdministrationRejected:
		printlnFn("Stage: administration. Unfortunately your application did not pass document verification.")
	default:
		printlnFn("Stage: administration.")
	}
}

func (a *App) printInterview(app *models.ApplicationRecord) {
	printlnFn(fmt.Sprintf("Application %s (cycle %d, batch %d)", app.ID, app.Year, app.Batch))
	switch app.InterviewStatus {
	case models.InterviewScheduled:
		printlnFn("Stage: interview. Your interview has been scheduled, check your email for details.")
	default:
		printlnFn("Stage: interview. Waiting for your interview to be scheduled.")
	}
}

func (a *App) printAnnouncement(app *models.ApplicationRecord) {
	printlnFn(fmt.Sprintf("Application %s (cycle %d, batch %d)", app.ID, app.Year, app.Batch))
	if app.InterviewStatus == models.InterviewPassed {
		printlnFn("Stage: announcement. Congratulations, you passed the interview!")
	} else {
		printlnFn("Stage: announcement. Unfortunately you did not pass the interview.")
	}
}
