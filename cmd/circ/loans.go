package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/readerly/circulate/internal/domain"
	"github.com/readerly/circulate/internal/service"
)

func newLoansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "View and manage loans",
	}
	cmd.AddCommand(
		newLoansListCmd(),
		newBorrowCmd(),
		newReturnCmd(),
		newForceReturnCmd(),
	)
	return cmd
}

func newLoansListCmd() *cobra.Command {
	var overdueOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loans (own, or all with --admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := theApp.loans()
			if _, err := holder.Load(cmd.Context()); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					401: "Please log in first.",
					403: "The admin loan view requires an administrator account.",
				}, "Could not load loans."))
			}

			loans := holder.Loans()
			if overdueOnly {
				loans = holder.Overdue()
			}
			for _, l := range loans {
				printLoan(l)
			}
			fmt.Printf("%d loan(s)\n", len(loans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&overdueOnly, "overdue", false, "only show overdue loans")
	return cmd
}

func newBorrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "borrow BOOK_ID",
		Short: "Borrow a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := theApp.loans()
			if err := holder.Borrow(cmd.Context(), args[0]); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					401: "Please log in first.",
					404: "No such book.",
					409: "No copies are available, or you already have this book on loan.",
				}, "Could not borrow the book."))
			}

			fmt.Println("Borrowed.")
			for _, l := range holder.Active() {
				if l.BookID == args[0] {
					fmt.Printf("Due %s\n", l.DueDate.Format("2006-01-02"))
				}
			}
			return nil
		},
	}
}

func newReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return LOAN_ID",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := theApp.loans().Return(cmd.Context(), args[0]); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					404: "No such loan.",
					409: "This loan is already returned.",
				}, "Could not return the book."))
			}
			fmt.Println("Returned.")
			return nil
		},
	}
}

func newForceReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force-return LOAN_ID",
		Short: "Close a loan on the borrower's behalf (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loan, err := theApp.loansFor(domain.ScopeAdmin).ForceReturn(cmd.Context(), args[0])
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					403: "Force-return requires an administrator account.",
					404: "No such loan.",
				}, "Could not force-return the loan."))
			}

			fmt.Printf("Loan %s closed", loan.ID)
			if loan.FineCents > 0 {
				fmt.Printf(", fine %s", formatCents(loan.FineCents))
			}
			fmt.Println()
			return nil
		},
	}
}

func printLoan(l domain.Loan) {
	title := l.BookID
	if l.Book != nil {
		title = l.Book.Title
	}

	status := "active"
	due := l.DueDate.Format("2006-01-02")
	switch {
	case !l.Active():
		status = "returned " + l.ReturnDate.Format("2006-01-02")
	case l.OverdueAt(time.Now()):
		fine := l.FineCents
		if fine == 0 {
			fine = service.CalculateFine(l.DueDate, nil)
		}
		status = color.RedString("overdue, fine %s", formatCents(fine))
	}

	who := ""
	if l.User != nil {
		who = "  " + l.User.Email
	}
	fmt.Printf("%-24s  %-32s  due %s  %s%s\n", l.ID, title, due, status, who)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
