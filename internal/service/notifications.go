package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/readerly/circulate/internal/domain"
)

// Notifications is the notification holder.
type Notifications struct {
	repo   domain.NotificationRepository
	logger *slog.Logger

	mu            sync.RWMutex
	notifications []domain.Notification
	loading       bool
	loadSeq       uint64
}

// NewNotifications creates an empty notification holder.
func NewNotifications(repo domain.NotificationRepository, logger *slog.Logger) *Notifications {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifications{repo: repo, logger: logger}
}

// Load fetches the feed and replaces the held collection in as-given order.
func (n *Notifications) Load(ctx context.Context) ([]domain.Notification, error) {
	seq := n.beginLoad()
	defer n.endLoad()

	notifications, err := n.repo.ListNotifications(ctx)
	if err != nil {
		n.logger.Error("failed to load notifications", "error", err)
		return nil, err
	}

	n.mu.Lock()
	stale := seq != n.loadSeq
	if !stale {
		n.notifications = make([]domain.Notification, len(notifications))
		copy(n.notifications, notifications)
	}
	n.mu.Unlock()

	if stale {
		n.logger.Debug("dropped stale notification load", "seq", seq)
		return notifications, nil
	}

	n.logger.Info("loaded notifications", "count", len(notifications))
	return notifications, nil
}

// MarkRead marks one notification as read and on success patches the held
// record. IsRead never reverts to false.
func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	if err := n.repo.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	n.mu.Lock()
	for i := range n.notifications {
		if n.notifications[i].ID == id {
			n.notifications[i].IsRead = true
			break
		}
	}
	n.mu.Unlock()

	return nil
}

// MarkAllRead flips every held notification to read before posting the bulk
// command, so the unread badge clears immediately. With nothing unread it is
// a no-op with no network call. On failure the local flip stays in place and
// the error still propagates; the next Load reconciles.
func (n *Notifications) MarkAllRead(ctx context.Context) error {
	n.mu.Lock()
	anyUnread := false
	for i := range n.notifications {
		if !n.notifications[i].IsRead {
			anyUnread = true
			n.notifications[i].IsRead = true
		}
	}
	n.mu.Unlock()

	if !anyUnread {
		return nil
	}

	if err := n.repo.MarkAllNotificationsRead(ctx); err != nil {
		n.logger.Error("failed to mark all notifications read", "error", err)
		return err
	}
	return nil
}

// Notifications returns a copy of the held collection.
func (n *Notifications) Notifications() []domain.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	notifications := make([]domain.Notification, len(n.notifications))
	copy(notifications, n.notifications)
	return notifications
}

// UnreadCount counts held notifications that are not read.
func (n *Notifications) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	count := 0
	for _, notif := range n.notifications {
		if !notif.IsRead {
			count++
		}
	}
	return count
}

// Counts summarizes the held feed.
func (n *Notifications) Counts() domain.NotificationCounts {
	n.mu.RLock()
	defer n.mu.RUnlock()

	counts := domain.NotificationCounts{Total: len(n.notifications)}
	for _, notif := range n.notifications {
		if !notif.IsRead {
			counts.Unread++
		}
	}
	return counts
}

// Recent returns up to limit held notifications, newest first. Ordering
// between identical timestamps is unspecified.
func (n *Notifications) Recent(limit int) []domain.Notification {
	n.mu.RLock()
	notifications := make([]domain.Notification, len(n.notifications))
	copy(notifications, n.notifications)
	n.mu.RUnlock()

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications
}

// ByType returns held notifications of one type, in held order.
func (n *Notifications) ByType(t domain.NotificationType) []domain.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var matched []domain.Notification
	for _, notif := range n.notifications {
		if notif.Type == t {
			matched = append(matched, notif)
		}
	}
	return matched
}

// Loading reports whether a load is in flight.
func (n *Notifications) Loading() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.loading
}

func (n *Notifications) beginLoad() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loading = true
	n.loadSeq++
	return n.loadSeq
}

func (n *Notifications) endLoad() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loading = false
}
