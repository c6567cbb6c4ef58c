package api

import "github.com/readerly/circulate/internal/domain"

const adminRole = "ADMIN"

// mapBook normalizes a wire record into a domain book. Missing optional
// fields default to empty strings and zero copy counts.
func mapBook(d bookDTO) domain.Book {
	id := d.ID
	if id == "" {
		id = d.AltID
	}

	book := domain.Book{
		ID:       id,
		ISBN:     d.ISBN,
		Title:    d.Title,
		Author:   d.Author,
		Genre:    d.Genre,
		CoverURL: d.CoverURL,
		Summary:  d.Summary,
	}
	if d.TotalCopies != nil {
		book.TotalCopies = *d.TotalCopies
	}
	if d.AvailableCopies != nil {
		book.AvailableCopies = *d.AvailableCopies
	}
	return book
}

func mapBooks(dtos []bookDTO) []domain.Book {
	books := make([]domain.Book, 0, len(dtos))
	for _, d := range dtos {
		books = append(books, mapBook(d))
	}
	return books
}

func mapBookSummary(d *bookSummaryDTO) *domain.BookSummary {
	if d == nil {
		return nil
	}
	return &domain.BookSummary{
		ID:       d.ID,
		Title:    d.Title,
		Author:   d.Author,
		CoverURL: d.CoverURL,
	}
}

func mapUserSummary(d *userSummaryDTO) *domain.UserSummary {
	if d == nil {
		return nil
	}
	return &domain.UserSummary{
		ID:    d.ID,
		Name:  d.Name,
		Email: d.Email,
	}
}

func mapLoan(d loanDTO) domain.Loan {
	return domain.Loan{
		ID:         d.ID,
		BookID:     d.BookID,
		UserID:     d.UserID,
		LoanDate:   d.LoanDate,
		DueDate:    d.DueDate,
		ReturnDate: d.ReturnDate,
		FineCents:  d.FineCents,
		Book:       mapBookSummary(d.Book),
		User:       mapUserSummary(d.User),
	}
}

func mapLoans(dtos []loanDTO) []domain.Loan {
	loans := make([]domain.Loan, 0, len(dtos))
	for _, d := range dtos {
		loans = append(loans, mapLoan(d))
	}
	return loans
}

func mapReservation(d reservationDTO) domain.Reservation {
	return domain.Reservation{
		ID:         d.ID,
		UserID:     d.UserID,
		BookID:     d.BookID,
		Status:     domain.ReservationStatus(d.Status),
		NotifiedAt: d.NotifiedAt,
		CreatedAt:  d.CreatedAt,
		Book:       mapBookSummary(d.Book),
		User:       mapUserSummary(d.User),
	}
}

func mapReservations(dtos []reservationDTO) []domain.Reservation {
	reservations := make([]domain.Reservation, 0, len(dtos))
	for _, d := range dtos {
		reservations = append(reservations, mapReservation(d))
	}
	return reservations
}

func mapNotification(d notificationDTO) domain.Notification {
	return domain.Notification{
		ID:        d.ID,
		UserID:    d.UserID,
		Type:      domain.NotificationType(d.Type),
		Message:   d.Message,
		IsRead:    d.IsRead,
		CreatedAt: d.CreatedAt,
	}
}

func mapNotifications(dtos []notificationDTO) []domain.Notification {
	notifications := make([]domain.Notification, 0, len(dtos))
	for _, d := range dtos {
		notifications = append(notifications, mapNotification(d))
	}
	return notifications
}

// mapUser normalizes the principal. An explicit isAdmin flag wins; otherwise
// admin status is inferred from the role field.
func mapUser(d userDTO) domain.User {
	user := domain.User{
		ID:    d.ID,
		Email: d.Email,
		Name:  d.Name,
	}
	if d.IsAdmin != nil {
		user.IsAdmin = *d.IsAdmin
	} else {
		user.IsAdmin = d.Role == adminRole
	}
	return user
}
