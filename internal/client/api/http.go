package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/beswanhub/beswan-cli/internal/client/models"
	"github.com/beswanhub/beswan-cli/internal/common"
)

// HTTPClient implements Client over the backend's JSON REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string

	// now is a test seam for token-expiry checks.
	now func() time.Time
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "https://api.example.org/api/v1").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// SetToken installs a bearer token obtained outside Login (e.g. restored
// from the environment).
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// envelope is the backend's uniform response wrapper.
type envelope[T any] struct {
	Data    *T     `json:"data"`
	Message string `json:"message"`
}

// checkToken reports common.ErrTokenExpired when the bearer token's exp
// claim has passed, so a doomed call fails locally instead of on the wire.
// The token is not verified here; the server remains the authority.
func (c *HTTPClient) checkToken() error {
	if c.token == "" {
		return common.ErrUnauthorized
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		// Opaque (non-JWT) tokens are passed through as-is.
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(c.now()) {
		return common.ErrTokenExpired
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request %s %s: %w", method, path, err)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+c.token)
	}
	return req, nil
}

// do executes req and decodes the enveloped body into T. A nil data field is
// returned as (nil, nil) so callers can model "record absent".
func do[T any](c *HTTPClient, req *http.Request) (*T, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", common.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, common.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var env envelope[json.RawMessage]
		_ = json.Unmarshal(body, &env)
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", common.ErrDecode, req.Method, req.URL.Path, err)
	}
	return env.Data, nil
}

func postJSON[T any](c *HTTPClient, ctx context.Context, path string, payload any) (*T, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do[T](c, req)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	data, err := postJSON[loginResponse](c, ctx, "/auth/login", loginRequest{Email: email, Password: string(password)})
	if err != nil {
		return err
	}
	if data == nil || data.Token == "" {
		return fmt.Errorf("%w: login response carries no token", common.ErrDecode)
	}
	c.token = data.Token
	return nil
}

func (c *HTTPClient) Registration(ctx context.Context) (*models.RegistrationWindow, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/scholarships/registration", nil)
	if err != nil {
		return nil, err
	}
	win, err := do[models.RegistrationWindow](c, req)
	if err != nil {
		return nil, err
	}
	if win == nil {
		return nil, fmt.Errorf("%w: registration response carries no data", common.ErrDecode)
	}
	return win, nil
}

func (c *HTTPClient) MyApplication(ctx context.Context) (*models.ApplicationRecord, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/scholarships/my-application", nil)
	if err != nil {
		return nil, err
	}
	app, err := do[models.ApplicationRecord](c, req)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return app, err
}

func (c *HTTPClient) SubmitApplication(ctx context.Context, sr *SubmitRequest) (*models.ApplicationRecord, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}
	app, err := postJSON[models.ApplicationRecord](c, ctx, "/scholarships/applications", sr)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("%w: submit response carries no application", common.ErrDecode)
	}
	return app, nil
}

func (c *HTTPClient) StageFile(ctx context.Context, name, mimeType string, size int64, r io.Reader) (*models.StagedFileReference, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files/stage", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-File-Mime", mimeType)
	req.ContentLength = int64(buf.Len())

	ref, err := do[models.StagedFileReference](c, req)
	if err != nil {
		return nil, err
	}
	if ref == nil || ref.TempID == "" {
		return nil, fmt.Errorf("%w: stage response carries no tempId", common.ErrDecode)
	}
	return ref, nil
}

func (c *HTTPClient) DeleteStaged(ctx context.Context, tempID string) error {
	if err := c.checkToken(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/files/stage/"+tempID, nil)
	if err != nil {
		return err
	}
	_, err = do[struct{}](c, req)
	if errors.Is(err, common.ErrNotFound) {
		// Already expired server-side.
		return nil
	}
	return err
}

func (c *HTTPClient) FinalizeFiles(ctx context.Context, items []models.FinalizeItem) (*models.FinalizeResult, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}
	res, err := postJSON[models.FinalizeResult](c, ctx, "/files/finalize", items)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: finalize response carries no data", common.ErrDecode)
	}
	return res, nil
}
