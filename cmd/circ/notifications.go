package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/readerly/circulate/internal/domain"
)

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "View notifications",
	}
	cmd.AddCommand(
		newNotificationsListCmd(),
		newNotificationsReadCmd(),
		newNotificationsReadAllCmd(),
	)
	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	var limit int
	var byType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := theApp.notifications()
			if _, err := holder.Load(cmd.Context()); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					401: "Please log in first.",
				}, "Could not load notifications."))
			}

			notifications := selectNotifications(holder.Recent(0), byType, limit)
			for _, n := range notifications {
				line := fmt.Sprintf("%-24s  %-22s  %s  %s",
					n.ID, n.Type, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
				if !n.IsRead {
					line = color.New(color.Bold).Sprint(line)
				}
				fmt.Println(line)
			}

			counts := holder.Counts()
			fmt.Printf("%d notification(s), %d unread\n", counts.Total, counts.Unread)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many")
	cmd.Flags().StringVar(&byType, "type", "", "filter by type (DUE_SOON, OVERDUE, RESERVATION_AVAILABLE)")
	return cmd
}

// selectNotifications narrows an already newest-first feed by type, then
// applies the limit, so --type and --limit compose.
func selectNotifications(all []domain.Notification, byType string, limit int) []domain.Notification {
	notifications := all
	if byType != "" {
		notifications = nil
		for _, n := range all {
			if n.Type == domain.NotificationType(byType) {
				notifications = append(notifications, n)
			}
		}
	}
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications
}

func newNotificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := theApp.notifications()
			if _, err := holder.Load(cmd.Context()); err != nil {
				return errors.New(domain.FriendlyMessage(err, nil, "Could not load notifications."))
			}
			if err := holder.MarkRead(cmd.Context(), args[0]); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					404: "No such notification.",
				}, "Could not mark the notification as read."))
			}
			fmt.Println("Marked as read.")
			return nil
		},
	}
}

func newNotificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := theApp.notifications()
			if _, err := holder.Load(cmd.Context()); err != nil {
				return errors.New(domain.FriendlyMessage(err, nil, "Could not load notifications."))
			}
			if err := holder.MarkAllRead(cmd.Context()); err != nil {
				return errors.New(domain.FriendlyMessage(err, nil, "Could not mark notifications as read."))
			}
			fmt.Println("All read.")
			return nil
		},
	}
}
