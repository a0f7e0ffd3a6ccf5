package waitlist

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewMemoryRepo()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJoin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestJoinWaitlist(t *testing.T) {
	r := newTestRouter()

	resp := postJoin(r, `{"email": "Pat@Example.com", "fullName": "Pat Doe"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestJoinWaitlistDuplicateEmail(t *testing.T) {
	r := newTestRouter()

	if resp := postJoin(r, `{"email": "pat@example.com", "fullName": "Pat Doe"}`); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	resp := postJoin(r, `{"email": "PAT@example.com", "fullName": "Pat Doe"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "already_joined") {
		t.Fatalf("expected already_joined, got %s", resp.Body.String())
	}
}

func TestJoinWaitlistValidation(t *testing.T) {
	r := newTestRouter()

	cases := []string{
		`{}`,
		`{"email": "not-an-email", "fullName": "Pat"}`,
		`{"email": "pat@example.com"}`,
	}
	for _, body := range cases {
		if resp := postJoin(r, body); resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
	}
}
