package service

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/readerly/circulate/internal/domain"
)

// fineCentsPerDay is the display estimate of one dollar per calendar day
// late. The server's fine figure on a record remains authoritative.
const fineCentsPerDay = 100

// Loans is the loan holder. The scope chosen at construction selects between
// the caller's own ledger and the admin view of all loans.
type Loans struct {
	repo   domain.LoanRepository
	scope  domain.Scope
	logger *slog.Logger

	mu      sync.RWMutex
	loans   []domain.Loan
	loading bool
	loadSeq uint64
}

// NewLoans creates an empty loan holder for the given scope.
func NewLoans(repo domain.LoanRepository, scope domain.Scope, logger *slog.Logger) *Loans {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loans{repo: repo, scope: scope, logger: logger}
}

// Load fetches the ledger and replaces the held collection in as-given order.
func (l *Loans) Load(ctx context.Context) ([]domain.Loan, error) {
	seq := l.beginLoad()
	defer l.endLoad()

	loans, err := l.repo.ListLoans(ctx, l.scope)
	if err != nil {
		l.logger.Error("failed to load loans", "scope", l.scope, "error", err)
		return nil, err
	}

	l.mu.Lock()
	stale := seq != l.loadSeq
	if !stale {
		l.loans = make([]domain.Loan, len(loans))
		copy(l.loans, loans)
	}
	l.mu.Unlock()

	if stale {
		l.logger.Debug("dropped stale loan load", "seq", seq)
		return loans, nil
	}

	l.logger.Info("loaded loans", "scope", l.scope, "count", len(loans))
	return loans, nil
}

// Borrow issues a borrow command and then reloads the full ledger. The new
// loan is never synthesized locally: due dates and fine rules are
// server-computed and only a reload carries them.
func (l *Loans) Borrow(ctx context.Context, bookID string) error {
	if err := l.repo.BorrowBook(ctx, bookID); err != nil {
		return err
	}

	l.logger.Info("borrowed book", "bookId", bookID)
	_, err := l.Load(ctx)
	return err
}

// Return issues a return command and on success patches the matching loan's
// return date to the current instant. The timestamp is a provisional local
// value for immediate feedback; the next Load replaces it with the server's.
func (l *Loans) Return(ctx context.Context, loanID string) error {
	if err := l.repo.ReturnBook(ctx, loanID); err != nil {
		return err
	}

	now := time.Now()
	l.mu.Lock()
	for i := range l.loans {
		if l.loans[i].ID == loanID {
			returned := now
			l.loans[i].ReturnDate = &returned
			break
		}
	}
	l.mu.Unlock()

	l.logger.Info("returned loan", "loanId", loanID)
	return nil
}

// ForceReturn closes a loan on the borrower's behalf (admin) and replaces
// the held record with the server's authoritative returned object. No
// optimism here: the admin view must be exact.
func (l *Loans) ForceReturn(ctx context.Context, loanID string) (domain.Loan, error) {
	updated, err := l.repo.ForceReturn(ctx, loanID)
	if err != nil {
		return domain.Loan{}, err
	}

	l.mu.Lock()
	for i := range l.loans {
		if l.loans[i].ID == updated.ID {
			l.loans[i] = updated
			break
		}
	}
	l.mu.Unlock()

	l.logger.Info("force-returned loan", "loanId", loanID)
	return updated, nil
}

// Loans returns a copy of the held collection.
func (l *Loans) Loans() []domain.Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	loans := make([]domain.Loan, len(l.loans))
	copy(loans, l.loans)
	return loans
}

// Active returns held loans with no return date.
func (l *Loans) Active() []domain.Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var active []domain.Loan
	for _, loan := range l.loans {
		if loan.Active() {
			active = append(active, loan)
		}
	}
	return active
}

// Overdue returns active held loans whose due date is strictly before now.
func (l *Loans) Overdue() []domain.Loan {
	now := time.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()

	var overdue []domain.Loan
	for _, loan := range l.loans {
		if loan.OverdueAt(now) {
			overdue = append(overdue, loan)
		}
	}
	return overdue
}

// HasActiveLoan reports whether some held loan for the book has no return date.
func (l *Loans) HasActiveLoan(bookID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, loan := range l.loans {
		if loan.BookID == bookID && loan.Active() {
			return true
		}
	}
	return false
}

// Loading reports whether a load is in flight.
func (l *Loans) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

func (l *Loans) beginLoad() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = true
	l.loadSeq++
	return l.loadSeq
}

func (l *Loans) endLoad() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
}

// CalculateFine estimates the fine in cents for a loan due at dueDate and
// returned at returnDate (nil means still out, so now is used). Returns on
// or before the due date cost nothing; otherwise partial days round up.
func CalculateFine(dueDate time.Time, returnDate *time.Time) int64 {
	returned := time.Now()
	if returnDate != nil {
		returned = *returnDate
	}

	if !returned.After(dueDate) {
		return 0
	}

	daysLate := int64(math.Ceil(returned.Sub(dueDate).Hours() / 24))
	return daysLate * fineCentsPerDay
}
