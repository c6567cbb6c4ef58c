package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/readerly/circulate/internal/domain"
)

// ListReservations fetches the caller's reservations, or all reservations
// with embedded summaries when called in admin scope.
func (c *Client) ListReservations(ctx context.Context, scope domain.Scope) ([]domain.Reservation, error) {
	path := "/reservations"
	if scope == domain.ScopeAdmin {
		path = "/reservations/admin"
	}

	var dtos []reservationDTO
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return mapReservations(dtos), nil
}

// CreateReservation places a hold on a book. The server assigns status and
// queue position, so the holder reloads rather than using the response.
func (c *Client) CreateReservation(ctx context.Context, bookID string) error {
	return c.doRequest(ctx, http.MethodPost, "/reservations", nil, reservationCreateRequest{BookID: bookID}, nil)
}

// CancelReservation deletes a reservation, using the admin route when the
// caller operates in admin scope.
func (c *Client) CancelReservation(ctx context.Context, id string, scope domain.Scope) error {
	path := fmt.Sprintf("/reservations/%s", id)
	if scope == domain.ScopeAdmin {
		path = fmt.Sprintf("/reservations/admin/%s", id)
	}
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}

// MarkReservationAvailable flips a reservation to NOTIFIED (admin only) and
// returns the server's authoritative record.
func (c *Client) MarkReservationAvailable(ctx context.Context, id string) (domain.Reservation, error) {
	var dto reservationDTO
	path := fmt.Sprintf("/reservations/admin/%s/mark-available", id)
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil, &dto); err != nil {
		return domain.Reservation{}, err
	}
	return mapReservation(dto), nil
}
