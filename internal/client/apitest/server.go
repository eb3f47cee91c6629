// Package apitest runs an in-process fake of the DBMelt auth API for tests.
// It implements register, login and me, records every request it receives
// and lets a test force any route to answer with a canned response.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"unicode"

	"github.com/gorilla/mux"
)

const apiPrefix = "/api/v1"

// Recorded is one request as the server saw it.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
	HasAuth       bool
	RequestID     string
	ContentType   string
	Body          map[string]any
}

// Response is a canned reply installed with Override.
type Response struct {
	Status int
	Body   string
}

type account struct {
	password string
	user     map[string]any
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Recorded
	accounts  map[string]account
	tokens    map[string]string
	overrides map[string]Response
	seq       int
}

// New starts the fake API. Callers must Close it.
func New() *Server {
	s := &Server{
		accounts:  make(map[string]account),
		tokens:    make(map[string]string),
		overrides: make(map[string]Response),
	}

	r := mux.NewRouter()
	r.Use(s.record)
	api := r.PathPrefix(apiPrefix).Subrouter()
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	return s
}

// APIURL is the base URL a gateway client should be configured with.
func (s *Server) APIURL() string {
	return s.URL + apiPrefix
}

// Override forces method+path (relative to the API prefix, e.g.
// "POST /auth/login") to answer with resp.
func (s *Server) Override(route string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[route] = resp
}

// AddUser creates an account and returns a valid token for it.
func (s *Server) AddUser(email, password, fullName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{password: password, user: newUser(email, fullName)}
	return s.issueLocked(email)
}

// Revoke invalidates token.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// RequestCount returns how many requests were received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Last returns the most recent request; ok is false when there is none.
func (s *Server) Last() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(raw)))

		rec := Recorded{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, apiPrefix),
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			ContentType:   r.Header.Get("Content-Type"),
		}
		_, rec.HasAuth = r.Header["Authorization"]
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		resp, overridden := s.overrides[rec.Method+" "+rec.Path]
		s.mu.Unlock()

		if overridden {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(resp.Status)
			_, _ = io.WriteString(w, resp.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email        string  `json:"email"`
		Password     string  `json:"password"`
		FullName     *string `json:"full_name"`
		ReferralCode *string `json:"referral_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if msg := weakPassword(body.Password); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "password"}, "msg": msg, "type": "value_error"}},
		})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[body.Email]; exists {
		s.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	fullName := ""
	if body.FullName != nil {
		fullName = *body.FullName
	}
	user := newUser(body.Email, fullName)
	if body.ReferralCode != nil {
		user["referred_by"] = *body.ReferralCode
	}
	s.accounts[body.Email] = account{password: body.Password, user: user}
	token := s.issueLocked(body.Email)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"access_token": token, "user": user})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[body.Email]
	if !ok || acc.password != body.Password {
		s.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token := s.issueLocked(body.Email)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    acc.user,
		"tokens":  map[string]any{"access_token": token, "token_type": "bearer"},
		"message": "Login successful",
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	email, valid := s.tokens[token]
	acc := s.accounts[email]
	s.mu.Unlock()

	if !ok || !valid {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, acc.user)
}

func (s *Server) issueLocked(email string) string {
	s.seq++
	token := fmt.Sprintf("tok%d", s.seq)
	s.tokens[token] = email
	return token
}

func newUser(email, fullName string) map[string]any {
	u := map[string]any{
		"id":                "user-" + email,
		"email":             email,
		"is_email_verified": true,
		"has_password":      true,
	}
	if fullName != "" {
		u["full_name"] = fullName
	}
	return u
}

// weakPassword mirrors a typical server policy: a digit is required.
func weakPassword(p string) string {
	for _, r := range p {
		if unicode.IsDigit(r) {
			return ""
		}
	}
	return "Password must contain a number"
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
