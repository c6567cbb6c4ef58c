package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readerly/circulate/internal/domain"
)

func newReservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"holds"},
		Short:   "View and manage reservations",
	}
	cmd.AddCommand(
		newReservationsListCmd(),
		newReserveCmd(),
		newReservationCancelCmd(),
		newMarkAvailableCmd(),
	)
	return cmd
}

func newReservationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reservations (own, or all with --admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := theApp.reservations()
			if _, err := holder.Load(cmd.Context()); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					401: "Please log in first.",
					403: "The admin reservation view requires an administrator account.",
				}, "Could not load reservations."))
			}

			active := holder.Active()
			for _, r := range active {
				printReservation(r)
			}
			fmt.Printf("%d active reservation(s)\n", len(active))
			return nil
		},
	}
}

func newReserveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create BOOK_ID",
		Short: "Reserve an unavailable book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := theApp.reservations().Create(cmd.Context(), args[0]); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					404: "No such book.",
					409: "You already have an active reservation for this book.",
				}, "Could not create the reservation."))
			}
			fmt.Println("Reserved. You will be notified when a copy becomes available.")
			return nil
		},
	}
}

func newReservationCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := theApp.reservations().Cancel(cmd.Context(), args[0]); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					404: "No such reservation.",
				}, "Could not cancel the reservation."))
			}
			fmt.Println("Cancelled.")
			return nil
		},
	}
}

func newMarkAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-available ID",
		Short: "Notify the holder that a copy is ready (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := theApp.reservationsFor(domain.ScopeAdmin).MarkAvailable(cmd.Context(), args[0])
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					403: "Marking reservations available requires an administrator account.",
					404: "No such reservation.",
				}, "Could not update the reservation."))
			}

			fmt.Printf("Reservation %s is now %s\n", res.ID, res.Status)
			return nil
		},
	}
}

func printReservation(r domain.Reservation) {
	title := r.BookID
	if r.Book != nil {
		title = r.Book.Title
	}
	who := ""
	if r.User != nil {
		who = "  " + r.User.Email
	}
	fmt.Printf("%-24s  %-32s  %-9s  since %s%s\n",
		r.ID, title, r.Status, r.CreatedAt.Format("2006-01-02"), who)
}
