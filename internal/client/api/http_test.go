package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/common"
)

// unsignedJWT builds an alg=none token with the given exp so expiry checks
// can run without a signing key.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := enc(map[string]string{"alg": "none", "typ": "JWT"})
	claims := enc(map[string]any{"exp": exp.Unix()})
	return header + "." + claims + "."
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL, 5*time.Second)
	c.SetToken(unsignedJWT(t, time.Now().Add(time.Hour)))
	return c
}

func TestLogin_StoresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ani@example.org", body["email"])
		fmt.Fprint(w, `{"data":{"token":"issued-token"}}`)
	})
	c.SetToken("")

	err := c.Login(context.Background(), "ani@example.org", []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, "issued-token", c.token)
}

func TestRegistration_DecodesWindowAndDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/scholarships/registration", r.URL.Path)
		require.NotEmpty(t, r.Header.Get(common.RequestIDHeaderName))
		fmt.Fprint(w, `{"data":{"open":true,"year":2026,"batch":2,
			"documents":[{"key":"ktmKtp","title":"KTM/KTP","required":true,"kind":"file"}]}}`)
	})

	win, err := c.Registration(context.Background())
	require.NoError(t, err)
	require.True(t, win.Open)
	require.Equal(t, 2026, win.Year)
	require.Len(t, win.Documents, 1)
	require.Equal(t, models.DocumentKindFile, win.Documents[0].Kind)
}

func TestRegistration_MalformedBodyFailsLoudly(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": "not-an-object"`)
	})

	_, err := c.Registration(context.Background())
	require.ErrorIs(t, err, common.ErrDecode)
}

func TestMyApplication_NullDataMeansNoApplication(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null}`)
	})

	app, err := c.MyApplication(context.Background())
	require.NoError(t, err)
	require.Nil(t, app)
}

func TestMyApplication_NotFoundMeansNoApplication(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	app, err := c.MyApplication(context.Background())
	require.NoError(t, err)
	require.Nil(t, app)
}

func TestMyApplication_ExpiredTokenFailsBeforeNetwork(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	c.SetToken(unsignedJWT(t, time.Now().Add(-time.Minute)))

	_, err := c.MyApplication(context.Background())
	require.ErrorIs(t, err, common.ErrTokenExpired)
	require.False(t, called)
}

func TestStageFile_UploadsMultipartAndDecodesReference(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/stage", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "ktm.pdf", hdr.Filename)
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, "pdf-bytes", string(content))
		fmt.Fprint(w, `{"data":{"tempId":"tmp-1","name":"ktm.pdf","size":9,
			"mimeType":"application/pdf","previewUrl":"https://files/tmp-1"}}`)
	})

	ref, err := c.StageFile(context.Background(), "ktm.pdf", "application/pdf", 9, strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	require.Equal(t, "tmp-1", ref.TempID)
	require.Equal(t, int64(9), ref.Size)
}

func TestDeleteStaged_SwallowsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	require.NoError(t, c.DeleteStaged(context.Background(), "tmp-gone"))
}

func TestFinalizeFiles_CorrelatesByTempID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/finalize", r.URL.Path)
		var items []models.FinalizeItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&items))
		require.Len(t, items, 2)
		fmt.Fprint(w, `{"data":{
			"uploaded":[{"tempId":"tmp-2","fileId":"file-2","url":"https://files/file-2"}],
			"errors":[{"tempId":"tmp-1","reason":"expired"}]}}`)
	})

	res, err := c.FinalizeFiles(context.Background(), []models.FinalizeItem{
		{TempID: "tmp-1", Folder: "a/b"},
		{TempID: "tmp-2", Folder: "a/b"},
	})
	require.NoError(t, err)
	require.Len(t, res.Uploaded, 1)
	require.Equal(t, "tmp-2", res.Uploaded[0].TempID)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "tmp-1", res.Errors[0].TempID)
}

func TestDo_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 maps to ErrUnauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, common.ErrUnauthorized)
			},
		},
		{
			name:   "500 carries server message",
			status: http.StatusInternalServerError,
			body:   `{"message":"boom"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				require.Equal(t, http.StatusInternalServerError, apiErr.Status)
				require.Equal(t, "boom", apiErr.Message)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			})
			_, err := c.Registration(context.Background())
			tc.check(t, err)
		})
	}
}

func TestUnavailableServer_MapsToErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.Registration(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}
