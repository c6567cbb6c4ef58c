package api

import (
	"context"
	"net/http"

	"github.com/readerly/circulate/internal/domain"
)

// ListLoans fetches the caller's loans, or all loans with embedded book and
// user summaries when called in admin scope.
func (c *Client) ListLoans(ctx context.Context, scope domain.Scope) ([]domain.Loan, error) {
	path := "/loans"
	if scope == domain.ScopeAdmin {
		path = "/loans/admin"
	}

	var dtos []loanDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return mapLoans(dtos), nil
}

// BorrowBook issues a borrow command. The created loan is discarded on
// purpose; the holder reloads to pick up the server-computed due date.
func (c *Client) BorrowBook(ctx context.Context, bookID string) error {
	return c.doRequest(ctx, http.MethodPost, "/loans/borrow", nil, borrowRequest{BookID: bookID}, nil)
}

// ReturnBook issues a return command for the caller's own loan.
func (c *Client) ReturnBook(ctx context.Context, loanID string) error {
	return c.doRequest(ctx, http.MethodPost, "/loans/return", nil, returnRequest{LoanID: loanID}, nil)
}

// ForceReturn closes a loan on a borrower's behalf (admin only) and returns
// the server's authoritative record.
func (c *Client) ForceReturn(ctx context.Context, loanID string) (domain.Loan, error) {
	var dto loanDTO
	if err := c.doRequest(ctx, http.MethodPost, "/loans/admin/force-return", nil, returnRequest{LoanID: loanID}, &dto); err != nil {
		return domain.Loan{}, err
	}
	return mapLoan(dto), nil
}
