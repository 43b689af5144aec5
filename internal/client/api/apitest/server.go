// Package apitest runs in-process fakes of the account and photo APIs for
// tests. Routing follows the real endpoints:
//
//	POST /auth/login        {username,password} -> session with accessToken
//	GET  /auth/users/me     Bearer token        -> profile
//	GET  /photos            page, per_page      -> []Photo
//	GET  /search/photos     query, page, per_page -> SearchResult
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/grain/internal/client/models"
	"github.com/go-chi/chi/v5"
)

// Account is a user known to the fake account API.
type Account struct {
	Password string
	Profile  models.Session
}

// Request is a recorded incoming call.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
}

// Server fakes both upstream APIs on one httptest.Server.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]Account
	tokens   map[string]string
	photos   []models.Photo
	clientID string
	failing  map[string]int
	requests []Request
	seq      int
}

// NewServer starts a fake that accepts clientID as the photo API key.
// Close it with t.Cleanup(srv.Close).
func NewServer(clientID string) *Server {
	s := &Server{
		accounts: map[string]Account{},
		tokens:   map[string]string{},
		clientID: clientID,
		failing:  map[string]int{},
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.injectFailures)
	r.Post("/auth/login", s.login)
	r.Get("/auth/users/me", s.me)
	r.Get("/photos", s.listPhotos)
	r.Get("/search/photos", s.searchPhotos)

	s.Server = httptest.NewServer(r)
	return s
}

// AddAccount registers a user; the returned token is what login will issue.
func (s *Server) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.Profile.Username] = a
}

// IssueToken makes token valid for username without a login call.
func (s *Server) IssueToken(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = username
}

// RevokeTokens invalidates every issued token.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// SetPhotos replaces the photo dataset.
func (s *Server) SetPhotos(p []models.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append([]models.Photo(nil), p...)
}

// FailPath makes requests to path answer with status until ClearFailures.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[path] = status
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = map[string]int{}
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, ok := s.failing[r.URL.Path]
		s.mu.Unlock()
		if ok {
			writeJSON(w, status, map[string]string{"message": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[creds.Username]
	if !ok || acc.Password != creds.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}
	s.seq++
	token := fmt.Sprintf("token-%s-%d", creds.Username, s.seq)
	s.tokens[token] = creds.Username
	s.mu.Unlock()

	out := acc.Profile
	out.AccessToken = token
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	username, known := s.tokens[token]
	acc := s.accounts[username]
	s.mu.Unlock()

	if !ok || !known {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token Expired!"})
		return
	}
	profile := acc.Profile
	profile.AccessToken = ""
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) authorizedClient(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Client-ID "+s.clientID {
		writeJSON(w, http.StatusUnauthorized, map[string][]string{"errors": {"OAuth error: The access token is invalid"}})
		return false
	}
	return true
}

func (s *Server) listPhotos(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedClient(w, r) {
		return
	}
	page, perPage := paging(r)

	s.mu.Lock()
	batch := slicePage(s.photos, page, perPage)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, batch)
}

func (s *Server) searchPhotos(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedClient(w, r) {
		return
	}
	query := strings.ToLower(r.URL.Query().Get("query"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"errors": {"query is missing"}})
		return
	}
	page, perPage := paging(r)

	s.mu.Lock()
	var matched []models.Photo
	for _, p := range s.photos {
		if strings.Contains(strings.ToLower(p.Caption()), query) {
			matched = append(matched, p)
		}
	}
	s.mu.Unlock()

	totalPages := (len(matched) + perPage - 1) / perPage
	writeJSON(w, http.StatusOK, models.SearchResult{
		Total:      len(matched),
		TotalPages: totalPages,
		Results:    slicePage(matched, page, perPage),
	})
}

func paging(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 10
	}
	return page, perPage
}

func slicePage(all []models.Photo, page, perPage int) []models.Photo {
	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.Photo{}
	}
	end := min(start+perPage, len(all))
	return append([]models.Photo(nil), all[start:end]...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Photos builds n numbered photos with ids "p1".."pn".
func Photos(n int) []models.Photo {
	out := make([]models.Photo, 0, n)
	for i := 1; i <= n; i++ {
		desc := fmt.Sprintf("photo number %d", i)
		out = append(out, models.Photo{
			ID:          fmt.Sprintf("p%d", i),
			Width:       1080,
			Height:      1350,
			Description: &desc,
			Likes:       i,
			URLs:        models.PhotoURLs{Regular: fmt.Sprintf("https://images.example/p%d", i)},
			User:        models.PhotoUser{ID: "u1", Username: "author", Name: "Photo Author"},
		})
	}
	return out
}
