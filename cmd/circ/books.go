package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/readerly/circulate/internal/domain"
	"github.com/readerly/circulate/internal/search"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage the catalog",
	}
	cmd.AddCommand(
		newBooksListCmd(),
		newBooksShowCmd(),
		newBooksFilterCmd(),
		newBooksAddCmd(),
		newBooksUpdateCmd(),
		newBooksRemoveCmd(),
		newBooksSetCopiesCmd(),
	)
	return cmd
}

func newBooksListCmd() *cobra.Command {
	var query domain.BookQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List or search the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q *domain.BookQuery
			if !query.IsZero() {
				q = &query
			}

			books, err := theApp.catalog.Load(cmd.Context(), q)
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, nil, "Could not load the catalog."))
			}

			for _, b := range books {
				printBook(b)
			}
			fmt.Printf("%d book(s)\n", len(books))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query.Text, "query", "q", "", "free text across title and author")
	cmd.Flags().StringVar(&query.Title, "title", "", "filter by title")
	cmd.Flags().StringVar(&query.Author, "author", "", "filter by author")
	cmd.Flags().StringVar(&query.Genre, "genre", "", "filter by genre")
	cmd.Flags().StringVar(&query.ISBN, "isbn", "", "filter by ISBN")
	cmd.Flags().IntVar(&query.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&query.PageSize, "page-size", 0, "page size")
	return cmd
}

func newBooksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one book, fetched fresh from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := theApp.catalog.GetByID(cmd.Context(), args[0])
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					404: "No such book.",
				}, "Could not load the book."))
			}

			printBook(book)
			if book.Summary != "" {
				fmt.Println(book.Summary)
			}
			return nil
		},
	}
}

func newBooksFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter QUERY",
		Short: "Fuzzy-filter the offline catalog snapshot, no network call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, ok := theApp.store.Books()
			if !ok {
				return errors.New("no catalog snapshot yet; run 'circ books list' first")
			}

			matches := search.Filter(args[0], books)
			for _, m := range matches {
				printBook(m.Book)
			}
			fmt.Printf("%d of %d book(s) matched\n", len(matches), len(books))
			return nil
		},
	}
}

func newBooksAddCmd() *cobra.Command {
	var book domain.NewBook
	var available int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("available") {
				book.AvailableCopies = &available
			}

			created, err := theApp.catalog.Add(cmd.Context(), book)
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					403: "Only administrators can add books.",
					409: "A book with this ISBN already exists.",
				}, "Could not add the book."))
			}

			fmt.Printf("Added %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&book.ISBN, "isbn", "", "13-digit ISBN")
	cmd.Flags().StringVar(&book.Title, "title", "", "title")
	cmd.Flags().StringVar(&book.Author, "author", "", "author")
	cmd.Flags().StringVar(&book.Genre, "genre", "", "genre")
	cmd.Flags().StringVar(&book.CoverURL, "cover-url", "", "cover image URL")
	cmd.Flags().StringVar(&book.Summary, "summary", "", "summary")
	cmd.Flags().IntVar(&book.TotalCopies, "copies", 1, "total copies")
	cmd.Flags().IntVar(&available, "available", 0, "available copies (defaults to total)")
	cmd.MarkFlagRequired("isbn")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("author")
	return cmd
}

func newBooksUpdateCmd() *cobra.Command {
	var (
		isbn, title, author, genre, coverURL, summary string
		totalCopies, availableCopies                  int
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a book (admin); only given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.BookPatch
			if cmd.Flags().Changed("isbn") {
				patch.ISBN = &isbn
			}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("author") {
				patch.Author = &author
			}
			if cmd.Flags().Changed("genre") {
				patch.Genre = &genre
			}
			if cmd.Flags().Changed("cover-url") {
				patch.CoverURL = &coverURL
			}
			if cmd.Flags().Changed("summary") {
				patch.Summary = &summary
			}
			if cmd.Flags().Changed("copies") {
				patch.TotalCopies = &totalCopies
			}
			if cmd.Flags().Changed("available") {
				patch.AvailableCopies = &availableCopies
			}

			updated, err := theApp.catalog.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					403: "Only administrators can edit books.",
					404: "No such book.",
				}, "Could not update the book."))
			}

			fmt.Printf("Updated %q (%s)\n", updated.Title, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "13-digit ISBN")
	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&genre, "genre", "", "genre")
	cmd.Flags().StringVar(&coverURL, "cover-url", "", "cover image URL")
	cmd.Flags().StringVar(&summary, "summary", "", "summary")
	cmd.Flags().IntVar(&totalCopies, "copies", 0, "total copies")
	cmd.Flags().IntVar(&availableCopies, "available", 0, "available copies")
	return cmd
}

func newBooksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a book from the catalog (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := theApp.catalog.Remove(cmd.Context(), args[0]); err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					403: "Only administrators can remove books.",
					404: "No such book.",
				}, "Could not remove the book."))
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}

func newBooksSetCopiesCmd() *cobra.Command {
	var available int

	cmd := &cobra.Command{
		Use:   "set-copies ID",
		Short: "Set a book's available copies (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := theApp.catalog.SetAvailableCopies(cmd.Context(), args[0], available)
			if err != nil {
				return errors.New(domain.FriendlyMessage(err, map[int]string{
					403: "Only administrators can change inventory.",
					404: "No such book.",
				}, "Could not update the book."))
			}

			fmt.Printf("%q now has %d/%d copies available\n", book.Title, book.AvailableCopies, book.TotalCopies)
			return nil
		},
	}

	cmd.Flags().IntVar(&available, "available", 0, "available copies")
	cmd.MarkFlagRequired("available")
	return cmd
}

func printBook(b domain.Book) {
	avail := fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies)
	if !b.Available() {
		avail = color.RedString(avail)
	}
	fmt.Printf("%-24s  %-32s  %-20s  %s\n", b.ID, b.Title, b.Author, avail)
}
