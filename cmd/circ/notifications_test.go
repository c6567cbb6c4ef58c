package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readerly/circulate/internal/domain"
)

func TestSelectNotificationsComposesTypeAndLimit(t *testing.T) {
	feed := []domain.Notification{
		{ID: "n1", Type: domain.NotificationOverdue},
		{ID: "n2", Type: domain.NotificationDueSoon},
		{ID: "n3", Type: domain.NotificationOverdue},
		{ID: "n4", Type: domain.NotificationOverdue},
	}

	notifIDs := func(notifications []domain.Notification) []string {
		out := make([]string, len(notifications))
		for i, n := range notifications {
			out[i] = n.ID
		}
		return out
	}

	// Type filter and limit apply together, feed order preserved.
	assert.Equal(t, []string{"n1", "n3"}, notifIDs(selectNotifications(feed, "OVERDUE", 2)))

	assert.Equal(t, []string{"n1", "n2", "n3"}, notifIDs(selectNotifications(feed, "", 3)))
	assert.Equal(t, []string{"n2"}, notifIDs(selectNotifications(feed, "DUE_SOON", 0)))
	assert.Empty(t, selectNotifications(feed, "RESERVATION_AVAILABLE", 5))
	assert.Equal(t, []string{"n1", "n2", "n3", "n4"}, notifIDs(selectNotifications(feed, "", 0)))
}
