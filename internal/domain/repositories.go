package domain

import "context"

// BookRepository is the remote catalog behind the book holder.
type BookRepository interface {
	ListBooks(ctx context.Context, query *BookQuery) ([]Book, error)
	GetBook(ctx context.Context, id string) (Book, error)
	AddBook(ctx context.Context, book NewBook) (Book, error)
	UpdateBook(ctx context.Context, id string, patch BookPatch) (Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// LoanRepository is the remote loan ledger. BorrowBook deliberately returns
// no loan: the server computes due dates and fine rules, so callers reload
// instead of synthesizing a record locally.
type LoanRepository interface {
	ListLoans(ctx context.Context, scope Scope) ([]Loan, error)
	BorrowBook(ctx context.Context, bookID string) error
	ReturnBook(ctx context.Context, loanID string) error
	ForceReturn(ctx context.Context, loanID string) (Loan, error)
}

// ReservationRepository is the remote reservation queue.
type ReservationRepository interface {
	ListReservations(ctx context.Context, scope Scope) ([]Reservation, error)
	CreateReservation(ctx context.Context, bookID string) error
	CancelReservation(ctx context.Context, id string, scope Scope) error
	MarkReservationAvailable(ctx context.Context, id string) (Reservation, error)
}

// NotificationRepository is the remote notification feed.
type NotificationRepository interface {
	ListNotifications(ctx context.Context) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// AuthRepository handles credential exchange with the backend.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, name, email, password string) (AuthResult, error)
	Me(ctx context.Context) (User, error)
}

// TokenSource supplies the current bearer credential for outgoing requests.
// An empty string means no credential is attached.
type TokenSource interface {
	Token() string
}
