package domain

import "time"

// Book is a catalog record. Copies are tracked server-side; the client
// trusts that 0 <= AvailableCopies <= TotalCopies.
type Book struct {
	ID              string
	ISBN            string
	Title           string
	Author          string
	Genre           string
	CoverURL        string
	Summary         string
	TotalCopies     int
	AvailableCopies int
}

// Available reports whether at least one copy can be borrowed.
func (b Book) Available() bool {
	return b.AvailableCopies > 0
}

// BookQuery filters a catalog load. Zero fields are omitted from the request.
type BookQuery struct {
	Text     string // free text across title/author
	Title    string
	Author   string
	Genre    string
	ISBN     string
	Page     int
	PageSize int
}

// IsZero reports whether the query carries no filters at all.
func (q BookQuery) IsZero() bool {
	return q == BookQuery{}
}

// NewBook is the payload for creating a catalog record. The server assigns
// the ID; AvailableCopies defaults to TotalCopies when nil.
type NewBook struct {
	ISBN            string
	Title           string
	Author          string
	Genre           string
	CoverURL        string
	Summary         string
	TotalCopies     int
	AvailableCopies *int
}

// BookPatch is a partial change set for an existing book. Nil fields are
// left untouched by the server.
type BookPatch struct {
	ISBN            *string
	Title           *string
	Author          *string
	Genre           *string
	CoverURL        *string
	Summary         *string
	TotalCopies     *int
	AvailableCopies *int
}

// BookSummary is the embedded book view carried on loans and reservations
// returned by the admin endpoints.
type BookSummary struct {
	ID       string
	Title    string
	Author   string
	CoverURL string
}

// UserSummary is the embedded borrower view on admin loan/reservation records.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// Loan is a borrow record. A nil ReturnDate means the loan is active.
// FineCents, when the server supplies it, is authoritative for billing;
// CalculateFine only produces a display estimate.
type Loan struct {
	ID         string
	BookID     string
	UserID     string
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	FineCents  int64

	Book *BookSummary
	User *UserSummary
}

// Active reports whether the book has not been returned yet.
func (l Loan) Active() bool {
	return l.ReturnDate == nil
}

// OverdueAt reports whether the loan is active and past due at the given instant.
func (l Loan) OverdueAt(now time.Time) bool {
	return l.Active() && l.DueDate.Before(now)
}

// ReservationStatus is the server-assigned reservation state. Transitions are
// one-directional: PENDING to NOTIFIED or PENDING to CANCELLED.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationNotified  ReservationStatus = "NOTIFIED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a hold placed on an unavailable title.
type Reservation struct {
	ID         string
	UserID     string
	BookID     string
	Status     ReservationStatus
	NotifiedAt *time.Time
	CreatedAt  time.Time

	Book *BookSummary
	User *UserSummary
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationDueSoon              NotificationType = "DUE_SOON"
	NotificationOverdue              NotificationType = "OVERDUE"
	NotificationReservationAvailable NotificationType = "RESERVATION_AVAILABLE"
)

// Notification is a message delivered to the borrower. IsRead only ever
// moves from false to true.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// NotificationCounts summarizes a notification feed.
type NotificationCounts struct {
	Total  int
	Unread int
}

// User is the authenticated principal.
type User struct {
	ID      string
	Email   string
	Name    string
	IsAdmin bool
}

// AuthResult is the server response to a successful login or registration.
type AuthResult struct {
	User  User
	Token string
}

// Scope selects between a caller's own records and the admin view of all
// records. It is fixed at holder construction.
type Scope int

const (
	ScopeSelf Scope = iota
	ScopeAdmin
)

func (s Scope) String() string {
	if s == ScopeAdmin {
		return "admin"
	}
	return "self"
}
