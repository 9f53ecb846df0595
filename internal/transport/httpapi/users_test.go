package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func getJSON(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv()
	h := env.router("")

	rr := postJSON(t, h, "/register",
		`{"first_name":"Ada","email":"Ada@Example.com","password":"hunter22","allergies":["peanuts"]}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp userResponse
	decodeBody(t, rr, &resp)
	if resp.ID == "" {
		t.Error("expected a generated user ID")
	}
	if resp.Email != "ada@example.com" {
		t.Errorf("email: got %q, want normalized %q", resp.Email, "ada@example.com")
	}
	if len(resp.Allergies) != 1 || resp.Allergies[0] != "peanuts" {
		t.Errorf("allergies: got %v", resp.Allergies)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv()
	h := env.router("")

	body := `{"first_name":"Ada","email":"ada@example.com","password":"hunter22"}`
	if rr := postJSON(t, h, "/register", body); rr.Code != http.StatusCreated {
		t.Fatalf("first register: got %d", rr.Code)
	}

	rr := postJSON(t, h, "/register", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var errResp errorResponse
	decodeBody(t, rr, &errResp)
	if errResp.Code != codeAlreadyExists {
		t.Errorf("error code: got %q, want %q", errResp.Code, codeAlreadyExists)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv()
	h := env.router("")

	rr := postJSON(t, h, "/register", `{"first_name":"Ada"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var errResp errorResponse
	decodeBody(t, rr, &errResp)
	if errResp.Code != codeValidationFailed {
		t.Errorf("error code: got %q, want %q", errResp.Code, codeValidationFailed)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	h := env.router("")

	postJSON(t, h, "/register", `{"first_name":"Ada","email":"ada@example.com","password":"hunter22"}`)

	rr := postJSON(t, h, "/login", `{"email":"ada@example.com","password":"hunter22"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp loginResponse
	decodeBody(t, rr, &resp)
	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token type: got %q, want %q", resp.TokenType, "bearer")
	}

	userID, err := env.users.VerifyToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID == "" {
		t.Error("verified token carries no user ID")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv()
	h := env.router("")

	postJSON(t, h, "/register", `{"first_name":"Ada","email":"ada@example.com","password":"hunter22"}`)

	rr := postJSON(t, h, "/login", `{"email":"ada@example.com","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp errorResponse
	decodeBody(t, rr, &errResp)
	if errResp.Code != codeUnauthorized {
		t.Errorf("error code: got %q, want %q", errResp.Code, codeUnauthorized)
	}
}
