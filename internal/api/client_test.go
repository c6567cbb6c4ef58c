package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerly/circulate/internal/api"
	"github.com/readerly/circulate/internal/domain"
	"github.com/readerly/circulate/internal/log"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, tokens domain.TokenSource) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, tokens, log.NullLogger())
}

func TestClient_StatusMapsToSentinel(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrConflict},
	}

	for _, tc := range cases {
		handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		})
		client := newTestClient(t, handler, nil)

		_, err := client.GetBook(context.Background(), "book-1")
		require.ErrorIs(t, err, tc.sentinel, "status %d", tc.status)

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, tc.status, apiErr.Status)
		assert.Equal(t, "nope", apiErr.Message)
	}
}

func TestClient_ErrorMessageFallsBackToMessageField(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "book already borrowed"})
	})
	client := newTestClient(t, handler, nil)

	err := client.BorrowBook(context.Background(), "book-1")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "book already borrowed", apiErr.Message)
}

func TestClient_TransportFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	client := api.NewClient(srv.URL, nil, log.NullLogger())
	_, err := client.ListBooks(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestClient_SendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotRequestID = req.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})
	client := newTestClient(t, handler, staticToken("token-1"))

	_, err := client.ListBooks(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})
	client := newTestClient(t, handler, staticToken(""))

	_, err := client.ListBooks(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ListBooksQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})
	client := newTestClient(t, handler, nil)

	_, err := client.ListBooks(context.Background(), &domain.BookQuery{
		Text:     "stephenson",
		Genre:    "sf",
		Page:     2,
		PageSize: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"stephenson"}, gotQuery["q"])
	assert.Equal(t, []string{"sf"}, gotQuery["genre"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"25"}, gotQuery["pageSize"])
	assert.NotContains(t, gotQuery, "title")
}

// Wire records may carry the identifier under "_id", and optional fields may
// be missing entirely; both normalize to a usable catalog record.
func TestClient_BookNormalization(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/books", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"items": [
			{"_id": "book-1", "title": "Anathem", "author": "Neal Stephenson"},
			{"id": "book-2", "title": "Blindsight", "author": "Peter Watts",
			 "genre": "sf", "isbn": "978-0", "coverUrl": "http://x/b.png",
			 "summary": "vampires in space", "totalCopies": 4, "availableCopies": 2}
		]}`))
	})
	client := newTestClient(t, r, nil)

	books, err := client.ListBooks(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "book-1", books[0].ID)
	assert.Empty(t, books[0].Genre)
	assert.Empty(t, books[0].CoverURL)
	assert.Empty(t, books[0].Summary)
	assert.Zero(t, books[0].TotalCopies)
	assert.Zero(t, books[0].AvailableCopies)
	assert.False(t, books[0].Available())

	assert.Equal(t, "book-2", books[1].ID)
	assert.Equal(t, 2, books[1].AvailableCopies)
	assert.True(t, books[1].Available())
}

func TestClient_UserAdminFromRole(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"user": {"id": "user-1", "email": "root@example.com",
			"name": "Root", "role": "ADMIN"}, "token": "token-1"}`))
	})
	client := newTestClient(t, r, nil)

	result, err := client.Login(context.Background(), "root@example.com", "hunter2")
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)
	assert.Equal(t, "token-1", result.Token)
}

func TestClient_UserAdminExplicitFlagWins(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/auth/me", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"id": "user-1", "email": "ada@example.com",
			"name": "Ada", "isAdmin": false, "role": "ADMIN"}`))
	})
	client := newTestClient(t, r, nil)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}
