package wizard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-backend/internal/bootstrap"
	"portfolio-backend/internal/portfolio"
	sharedauth "portfolio-backend/internal/shared/auth"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/users"
)

const recordJSON = `{
	"name": "John Doe",
	"tagline": "Software Engineer",
	"bio": "Builds backend systems.",
	"contact": {"email": "john@example.com"},
	"skills": ["Go", "PostgreSQL"],
	"experience": [],
	"projects": [],
	"education": []
}`

// scriptedText returns canned generator responses in order.
type scriptedText struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedText) GenerateJSON(ctx context.Context, credential, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	if s.errs != nil && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return s.responses[i], nil
}

// testPDF assembles a minimal single-page PDF carrying the given content
// stream, computing xref offsets so the file is well-formed.
func testPDF(contentStream string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(contentStream), contentStream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)
	return buf.Bytes()
}

func newTestApp(t *testing.T, text portfolio.TextGenerator) *bootstrap.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Config{
		Env:               "dev",
		LocalStoreDir:     t.TempDir(),
		SessionTTLMinutes: 60,
		GeminiAPIKey:      "system-key-123456",
		GeminiModel:       "test-model",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(app.Close)

	app.Pipeline.Generator.Text = text
	app.Pipeline.Generator.Sleep = func(time.Duration) {}
	return app
}

func signInUser(t *testing.T, app *bootstrap.App, userID, email string) string {
	t.Helper()
	err := app.UsersService.UpsertFromAuth(context.Background(), users.User{
		ID:    userID,
		Email: email,
	})
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	token, err := sharedauth.SignToken(sharedauth.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func uploadRequest(t *testing.T, token string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == "portfolio_session" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestUploadPreviewDownloadFlow(t *testing.T) {
	text := &scriptedText{responses: []string{recordJSON}}
	app := newTestApp(t, text)
	token := signInUser(t, app, "google:flow", "flow@example.com")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, token, "resume.pdf",
		testPDF("BT /F1 12 Tf 72 720 Td (John Doe, Software Engineer) Tj ET")))

	if resp.Code != http.StatusOK {
		t.Fatalf("upload expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Record portfolio.Record `json:"record"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if payload.Record.Name != "John Doe" {
		t.Fatalf("record name = %q, want John Doe", payload.Record.Name)
	}
	if text.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", text.calls)
	}

	cookie := sessionCookie(t, resp)

	user, err := app.UsersService.GetByID(context.Background(), "google:flow")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !user.HasGeneratedPortfolio {
		t.Fatal("expected profile flag after free generation")
	}

	previewReq := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/preview/terminal", nil)
	previewReq.AddCookie(cookie)
	previewResp := httptest.NewRecorder()
	app.Router.ServeHTTP(previewResp, previewReq)

	if previewResp.Code != http.StatusOK {
		t.Fatalf("preview expected 200, got %d: %s", previewResp.Code, previewResp.Body.String())
	}
	if !strings.Contains(previewResp.Body.String(), "John Doe") {
		t.Fatal("preview missing record name")
	}
	if ct := previewResp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("preview content type = %q", ct)
	}

	zipReq := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/download/terminal", nil)
	zipReq.AddCookie(cookie)
	zipResp := httptest.NewRecorder()
	app.Router.ServeHTTP(zipResp, zipReq)

	if zipResp.Code != http.StatusOK {
		t.Fatalf("download expected 200, got %d", zipResp.Code)
	}
	if ct := zipResp.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("download content type = %q", ct)
	}
	if cd := zipResp.Header().Get("Content-Disposition"); !strings.Contains(cd, "portfolio-terminal.zip") {
		t.Fatalf("download disposition = %q", cd)
	}
}

func TestUploadSecondFreeGenerationBlocked(t *testing.T) {
	text := &scriptedText{responses: []string{recordJSON}}
	app := newTestApp(t, text)
	token := signInUser(t, app, "google:limit", "limit@example.com")

	pdf := testPDF("BT /F1 12 Tf 72 720 Td (John Doe) Tj ET")

	first := httptest.NewRecorder()
	app.Router.ServeHTTP(first, uploadRequest(t, token, "resume.pdf", pdf))
	if first.Code != http.StatusOK {
		t.Fatalf("first upload expected 200, got %d: %s", first.Code, first.Body.String())
	}

	second := httptest.NewRecorder()
	app.Router.ServeHTTP(second, uploadRequest(t, token, "resume.pdf", pdf))
	if second.Code != http.StatusForbidden {
		t.Fatalf("second upload expected 403, got %d: %s", second.Code, second.Body.String())
	}
	if !strings.Contains(second.Body.String(), "free_limit_reached") {
		t.Fatalf("expected free_limit_reached, got %s", second.Body.String())
	}
	if text.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", text.calls)
	}
}

func TestUploadOwnKeyBypassesFreeLimit(t *testing.T) {
	text := &scriptedText{responses: []string{recordJSON}}
	app := newTestApp(t, text)
	token := signInUser(t, app, "google:own-key", "ownkey@example.com")

	ctx := context.Background()
	if err := app.UsersService.MarkPortfolioGenerated(ctx, "google:own-key"); err != nil {
		t.Fatalf("mark generated: %v", err)
	}
	if err := app.UsersService.SetAPIKey(ctx, "google:own-key", "user-key-abcdef"); err != nil {
		t.Fatalf("set api key: %v", err)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, token, "resume.pdf",
		testPDF("BT /F1 12 Tf 72 720 Td (John Doe) Tj ET")))
	if resp.Code != http.StatusOK {
		t.Fatalf("upload expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	text := &scriptedText{responses: []string{recordJSON}}
	app := newTestApp(t, text)
	token := signInUser(t, app, "google:docx", "docx@example.com")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, token, "resume.docx", []byte("not a pdf")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_file_type") {
		t.Fatalf("expected invalid_file_type, got %s", resp.Body.String())
	}
	if text.calls != 0 {
		t.Fatalf("generator calls = %d, want 0", text.calls)
	}
}

func TestUploadRequiresLogin(t *testing.T) {
	app := newTestApp(t, &scriptedText{responses: []string{recordJSON}})

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "", "resume.pdf", testPDF("")))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestUploadEmptyDocument(t *testing.T) {
	text := &scriptedText{responses: []string{recordJSON}}
	app := newTestApp(t, text)
	token := signInUser(t, app, "google:empty", "empty@example.com")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, token, "resume.pdf", testPDF("")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "empty_document") {
		t.Fatalf("expected empty_document, got %s", resp.Body.String())
	}
	if text.calls != 0 {
		t.Fatalf("generator calls = %d, want 0", text.calls)
	}
}

func TestUploadGeneratorReturnsGarbage(t *testing.T) {
	text := &scriptedText{responses: []string{"sorry, I cannot help with that"}}
	app := newTestApp(t, text)
	token := signInUser(t, app, "google:garbage", "garbage@example.com")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, token, "resume.pdf",
		testPDF("BT /F1 12 Tf 72 720 Td (John Doe) Tj ET")))

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "generation_failed") {
		t.Fatalf("expected generation_failed, got %s", resp.Body.String())
	}
}

func TestListTemplates(t *testing.T) {
	app := newTestApp(t, &scriptedText{responses: []string{recordJSON}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	for _, slug := range []string{"terminal", "renaissance", "newspaper"} {
		if !strings.Contains(resp.Body.String(), slug) {
			t.Fatalf("templates response missing %q: %s", slug, resp.Body.String())
		}
	}
}

func TestPreviewWithoutGeneratedPortfolio(t *testing.T) {
	app := newTestApp(t, &scriptedText{responses: []string{recordJSON}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/preview/terminal", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "no_portfolio") {
		t.Fatalf("expected no_portfolio, got %s", resp.Body.String())
	}
}

func TestPreviewUnknownTemplate(t *testing.T) {
	app := newTestApp(t, &scriptedText{responses: []string{recordJSON}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/preview/brutalist", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
