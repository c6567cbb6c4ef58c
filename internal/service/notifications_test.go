package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerly/circulate/internal/api"
	"github.com/readerly/circulate/internal/domain"
	"github.com/readerly/circulate/internal/log"
	"github.com/readerly/circulate/internal/service"
)

type notificationRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

type notificationsBackend struct {
	mu            sync.Mutex
	notifications []notificationRecord
	markAllHits   int64
	failMarkAll   bool
}

func (b *notificationsBackend) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/notifications", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.notifications)
	})

	r.Post("/notifications/{id}/read", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.notifications {
			if b.notifications[i].ID == chi.URLParam(req, "id") {
				b.notifications[i].IsRead = true
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "notification not found"})
	})

	r.Post("/notifications/mark-all-read", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(&b.markAllHits, 1)
		if b.failMarkAll {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "mailbox busy"})
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.notifications {
			b.notifications[i].IsRead = true
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func newNotificationsFixture(t *testing.T) (*service.Notifications, *notificationsBackend) {
	t.Helper()

	stamp := func(agoHours int) string {
		return time.Now().Add(-time.Duration(agoHours) * time.Hour).UTC().Format(time.RFC3339)
	}
	backend := &notificationsBackend{
		notifications: []notificationRecord{
			{ID: "notif-1", UserID: "user-1", Type: "DUE_SOON", Message: "Anathem is due soon", IsRead: false, CreatedAt: stamp(1)},
			{ID: "notif-2", UserID: "user-1", Type: "OVERDUE", Message: "Blindsight is overdue", IsRead: false, CreatedAt: stamp(30)},
			{ID: "notif-3", UserID: "user-1", Type: "RESERVATION_AVAILABLE", Message: "Contact is ready for pickup", IsRead: true, CreatedAt: stamp(5)},
		},
	}
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, nil, log.NullLogger())
	return service.NewNotifications(client, log.NullLogger()), backend
}

func TestNotifications_LoadAndDerivedCounts(t *testing.T) {
	notifications, _ := newNotificationsFixture(t)

	loaded, err := notifications.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, 2, notifications.UnreadCount())
	assert.Equal(t, domain.NotificationCounts{Total: 3, Unread: 2}, notifications.Counts())
}

func TestNotifications_MarkReadPatchesRecord(t *testing.T) {
	notifications, _ := newNotificationsFixture(t)

	_, err := notifications.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, notifications.MarkRead(context.Background(), "notif-1"))

	assert.Equal(t, 1, notifications.UnreadCount())
	for _, notif := range notifications.Notifications() {
		if notif.ID == "notif-1" {
			assert.True(t, notif.IsRead)
		}
	}
}

func TestNotifications_LoadSnapshotSurvivesMarkRead(t *testing.T) {
	notifications, _ := newNotificationsFixture(t)

	snapshot, err := notifications.Load(context.Background())
	require.NoError(t, err)
	require.False(t, snapshot[0].IsRead)

	require.NoError(t, notifications.MarkRead(context.Background(), "notif-1"))

	assert.False(t, snapshot[0].IsRead)
	assert.Equal(t, 1, notifications.UnreadCount())
}

func TestNotifications_MarkAllReadIsIdempotent(t *testing.T) {
	notifications, backend := newNotificationsFixture(t)

	_, err := notifications.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, notifications.MarkAllRead(context.Background()))
	assert.Equal(t, 0, notifications.UnreadCount())
	assert.EqualValues(t, 1, atomic.LoadInt64(&backend.markAllHits))

	// Nothing left unread, so the second call never reaches the network.
	require.NoError(t, notifications.MarkAllRead(context.Background()))
	assert.EqualValues(t, 1, atomic.LoadInt64(&backend.markAllHits))
}

// The local flip happens before the request and is not rolled back when the
// request fails; the error still surfaces to the caller.
func TestNotifications_MarkAllReadKeepsFlipOnFailure(t *testing.T) {
	notifications, backend := newNotificationsFixture(t)

	_, err := notifications.Load(context.Background())
	require.NoError(t, err)

	backend.failMarkAll = true
	err = notifications.MarkAllRead(context.Background())
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, 0, notifications.UnreadCount())
}

func TestNotifications_RecentOrdersNewestFirst(t *testing.T) {
	notifications, _ := newNotificationsFixture(t)

	_, err := notifications.Load(context.Background())
	require.NoError(t, err)

	recent := notifications.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "notif-1", recent[0].ID)
	assert.Equal(t, "notif-3", recent[1].ID)
}

func TestNotifications_ByType(t *testing.T) {
	notifications, _ := newNotificationsFixture(t)

	_, err := notifications.Load(context.Background())
	require.NoError(t, err)

	overdue := notifications.ByType(domain.NotificationOverdue)
	require.Len(t, overdue, 1)
	assert.Equal(t, "notif-2", overdue[0].ID)

	assert.Empty(t, notifications.ByType(domain.NotificationType("UNKNOWN")))
}
