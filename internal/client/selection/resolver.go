// Package selection derives which selection-stage screen the user is
// authorized to view from the read-only application record and registration
// window, and tracks the one-time "passed administration" celebration.
package selection

import (
	"github.com/beswanhub/beswan-cli/internal/client/models"
)

// Route identifies a screen in the selection flow.
type Route string

const (
	// RouteInfo is the general information page, shown when the user has no
	// application and registration is closed.
	RouteInfo Route = "/beasiswa"

	// RouteRegistration is the application form, shown when the user has no
	// application and registration is open.
	RouteRegistration Route = "/beasiswa/daftar"

	// RouteAdministration shows the administration review stage. Rejection
	// is content on this same route, not a separate one.
	RouteAdministration Route = "/beasiswa/seleksi/administrasi"

	// RouteInterview shows the interview stage.
	RouteInterview Route = "/beasiswa/seleksi/wawancara"

	// RouteAnnouncement shows the final announcement.
	RouteAnnouncement Route = "/beasiswa/seleksi/pengumuman"
)

// Resolve computes the screen the user should see. Pure: it never mutates
// the record and does no I/O.
func Resolve(app *models.ApplicationRecord, win models.RegistrationWindow) Route {
	if app == nil {
		if win.Open {
			return RouteRegistration
		}
		return RouteInfo
	}

	if app.AdministrationStatus != models.AdministrationPassed {
		return RouteAdministration
	}

	if !app.InterviewStatus.Decided() {
		return RouteInterview
	}

	return RouteAnnouncement
}

// Redirect decides where the user should land given the screen currently
// shown. One carve-out: while the one-time celebration interstitial is being
// held on the administration screen, the user stays there even though the
// resolver already points past it.
func Redirect(current, resolved Route, holdCelebration bool) (Route, bool) {
	if current == resolved {
		return current, false
	}
	if holdCelebration && current == RouteAdministration && resolvedPastAdministration(resolved) {
		return current, false
	}
	return resolved, true
}

func resolvedPastAdministration(r Route) bool {
	return r == RouteInterview || r == RouteAnnouncement
}
