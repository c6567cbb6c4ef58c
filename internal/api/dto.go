package api

import "time"

// bookList is the envelope GET /books responds with.
type bookList struct {
	Items []bookDTO `json:"items"`
}

// bookDTO is a catalog record on the wire. Older backend deployments emit
// the identifier as "_id" instead of "id".
type bookDTO struct {
	ID              string `json:"id,omitempty"`
	AltID           string `json:"_id,omitempty"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre,omitempty"`
	CoverURL        string `json:"coverUrl,omitempty"`
	Summary         string `json:"summary,omitempty"`
	TotalCopies     *int   `json:"totalCopies,omitempty"`
	AvailableCopies *int   `json:"availableCopies,omitempty"`
}

type bookCreateRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	CoverURL        string `json:"coverUrl"`
	Summary         string `json:"summary"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies *int   `json:"availableCopies,omitempty"`
}

type bookUpdateRequest struct {
	ISBN            *string `json:"isbn,omitempty"`
	Title           *string `json:"title,omitempty"`
	Author          *string `json:"author,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	CoverURL        *string `json:"coverUrl,omitempty"`
	Summary         *string `json:"summary,omitempty"`
	TotalCopies     *int    `json:"totalCopies,omitempty"`
	AvailableCopies *int    `json:"availableCopies,omitempty"`
}

type bookSummaryDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"coverUrl,omitempty"`
}

type userSummaryDTO struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loanDTO struct {
	ID         string          `json:"id"`
	BookID     string          `json:"bookId"`
	UserID     string          `json:"userId"`
	LoanDate   time.Time       `json:"loanDate"`
	DueDate    time.Time       `json:"dueDate"`
	ReturnDate *time.Time      `json:"returnDate,omitempty"`
	FineCents  int64           `json:"fineCents,omitempty"`
	Book       *bookSummaryDTO `json:"book,omitempty"`
	User       *userSummaryDTO `json:"user,omitempty"`
}

type borrowRequest struct {
	BookID string `json:"bookId"`
}

type returnRequest struct {
	LoanID string `json:"loanId"`
}

type reservationDTO struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	BookID     string          `json:"bookId"`
	Status     string          `json:"status"`
	NotifiedAt *time.Time      `json:"notifiedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	Book       *bookSummaryDTO `json:"book,omitempty"`
	User       *userSummaryDTO `json:"user,omitempty"`
}

type reservationCreateRequest struct {
	BookID string `json:"bookId"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// userDTO is the principal on the wire. isAdmin may be absent, in which case
// the role field decides admin status.
type userDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
	Role    string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}
