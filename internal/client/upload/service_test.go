package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beswanhub/beswan-cli/internal/client/api"
	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/logging"
)

type fakeAPI struct {
	api.Client

	stageRef  *models.StagedFileReference
	stageErr  error
	stageGate chan struct{} // when set, StageFile blocks until closed

	stagedNames []string
	deletedIDs  []string
	deleteErr   error
}

func (f *fakeAPI) StageFile(ctx context.Context, name, mimeType string, size int64, r io.Reader) (*models.StagedFileReference, error) {
	if f.stageGate != nil {
		<-f.stageGate
	}
	f.stagedNames = append(f.stagedNames, name)
	return f.stageRef, f.stageErr
}

func (f *fakeAPI) DeleteStaged(ctx context.Context, tempID string) error {
	f.deletedIDs = append(f.deletedIDs, tempID)
	return f.deleteErr
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func pdf(name string) File {
	return File{Name: name, Size: 100, MimeType: "application/pdf", Reader: strings.NewReader("bytes")}
}

func TestStage_Success(t *testing.T) {
	f := &fakeAPI{stageRef: &models.StagedFileReference{TempID: "tmp-1", Name: "ktm.pdf"}}
	s := NewService(f, testLogger())

	ref, err := s.Stage(context.Background(), "ktmKtp", pdf("ktm.pdf"))
	require.NoError(t, err)
	require.Equal(t, "tmp-1", ref.TempID)
	require.False(t, s.InFlight())
}

func TestStage_ValidationFailureSkipsNetwork(t *testing.T) {
	f := &fakeAPI{}
	s := NewService(f, testLogger())

	_, err := s.Stage(context.Background(), "ktmKtp", File{Name: "a.zip", Size: 10, MimeType: "application/zip"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Empty(t, f.stagedNames, "rejected file must not be uploaded")
}

func TestStage_ServerFailureWrapsUploadError(t *testing.T) {
	cause := errors.New("tcp reset")
	f := &fakeAPI{stageErr: cause}
	s := NewService(f, testLogger())

	_, err := s.Stage(context.Background(), "ktmKtp", pdf("ktm.pdf"))
	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "ktmKtp", uerr.Key)
	require.ErrorIs(t, err, cause)
	require.False(t, s.InFlight())
}

func TestStage_SameSlotIsBlockedWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeAPI{stageRef: &models.StagedFileReference{TempID: "tmp-1"}, stageGate: gate}
	s := NewService(f, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := s.Stage(context.Background(), "ktmKtp", pdf("first.pdf"))
		require.NoError(t, err)
	}()

	require.Eventually(t, s.InFlight, time.Second, time.Millisecond)

	_, err := s.Stage(context.Background(), "ktmKtp", pdf("second.pdf"))
	require.ErrorIs(t, err, ErrSlotBusy)

	close(gate)
	<-done
	require.False(t, s.InFlight())
}

func TestRemove_SwallowsFailures(t *testing.T) {
	f := &fakeAPI{deleteErr: errors.New("boom")}
	s := NewService(f, testLogger())

	s.Remove(context.Background(), "tmp-1")
	require.Equal(t, []string{"tmp-1"}, f.deletedIDs)

	s.Remove(context.Background(), "")
	require.Len(t, f.deletedIDs, 1, "empty tempId is a no-op")
}
