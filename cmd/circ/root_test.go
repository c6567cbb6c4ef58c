package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerly/circulate/internal/api"
	"github.com/readerly/circulate/internal/domain"
	"github.com/readerly/circulate/internal/log"
)

func TestAppScopeFollowsAdminFlag(t *testing.T) {
	defer func() { adminFlag = false }()
	a := &app{}

	adminFlag = false
	assert.Equal(t, domain.ScopeSelf, a.scope())

	adminFlag = true
	assert.Equal(t, domain.ScopeAdmin, a.scope())
}

// The admin-only commands select their scope explicitly; they neither read
// nor flip the global --admin flag.
func TestExplicitAdminScopeIndependentOfFlag(t *testing.T) {
	var adminHits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/loans/admin" || r.URL.Path == "/reservations/admin" {
			atomic.AddInt64(&adminHits, 1)
		}
		w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	a := &app{
		client: api.NewClient(srv.URL, nil, log.NullLogger()),
		logger: log.NullLogger(),
	}

	adminFlag = false
	defer func() { adminFlag = false }()

	_, err := a.loansFor(domain.ScopeAdmin).Load(context.Background())
	require.NoError(t, err)
	_, err = a.reservationsFor(domain.ScopeAdmin).Load(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&adminHits))
	assert.False(t, adminFlag)
}
