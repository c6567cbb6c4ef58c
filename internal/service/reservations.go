package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/readerly/circulate/internal/domain"
)

// Reservations is the reservation holder. The scope chosen at construction
// selects the caller's own queue or the admin view, including which delete
// route a cancel takes.
type Reservations struct {
	repo   domain.ReservationRepository
	scope  domain.Scope
	logger *slog.Logger

	mu           sync.RWMutex
	reservations []domain.Reservation
	loading      bool
	loadSeq      uint64
}

// NewReservations creates an empty reservation holder for the given scope.
func NewReservations(repo domain.ReservationRepository, scope domain.Scope, logger *slog.Logger) *Reservations {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reservations{repo: repo, scope: scope, logger: logger}
}

// Load fetches the queue and replaces the held collection in as-given order.
func (r *Reservations) Load(ctx context.Context) ([]domain.Reservation, error) {
	seq := r.beginLoad()
	defer r.endLoad()

	reservations, err := r.repo.ListReservations(ctx, r.scope)
	if err != nil {
		r.logger.Error("failed to load reservations", "scope", r.scope, "error", err)
		return nil, err
	}

	r.mu.Lock()
	stale := seq != r.loadSeq
	if !stale {
		r.reservations = make([]domain.Reservation, len(reservations))
		copy(r.reservations, reservations)
	}
	r.mu.Unlock()

	if stale {
		r.logger.Debug("dropped stale reservation load", "seq", seq)
		return reservations, nil
	}

	r.logger.Info("loaded reservations", "scope", r.scope, "count", len(reservations))
	return reservations, nil
}

// Create places a hold and then reloads the queue. The server assigns the
// status and ordering, so the record is never synthesized locally.
func (r *Reservations) Create(ctx context.Context, bookID string) error {
	if err := r.repo.CreateReservation(ctx, bookID); err != nil {
		return err
	}

	r.logger.Info("created reservation", "bookId", bookID)
	_, err := r.Load(ctx)
	return err
}

// Cancel deletes a reservation and removes the record from the held
// collection entirely. Cancellation is terminal; unlike a status flip the
// record leaves the active view altogether.
func (r *Reservations) Cancel(ctx context.Context, id string) error {
	if err := r.repo.CancelReservation(ctx, id, r.scope); err != nil {
		return err
	}

	r.mu.Lock()
	kept := make([]domain.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		if res.ID != id {
			kept = append(kept, res)
		}
	}
	r.reservations = kept
	r.mu.Unlock()

	r.logger.Info("cancelled reservation", "id", id)
	return nil
}

// MarkAvailable flips a reservation to NOTIFIED (admin) and replaces the
// held record with the server's authoritative updated object.
func (r *Reservations) MarkAvailable(ctx context.Context, id string) (domain.Reservation, error) {
	updated, err := r.repo.MarkReservationAvailable(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}

	r.mu.Lock()
	for i := range r.reservations {
		if r.reservations[i].ID == updated.ID {
			r.reservations[i] = updated
			break
		}
	}
	r.mu.Unlock()

	r.logger.Info("marked reservation available", "id", id)
	return updated, nil
}

// Reservations returns a copy of the held collection.
func (r *Reservations) Reservations() []domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservations := make([]domain.Reservation, len(r.reservations))
	copy(reservations, r.reservations)
	return reservations
}

// Active returns held reservations that are not cancelled.
func (r *Reservations) Active() []domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []domain.Reservation
	for _, res := range r.reservations {
		if res.Status != domain.ReservationCancelled {
			active = append(active, res)
		}
	}
	return active
}

// HasActiveReservation reports whether a PENDING reservation for the book is
// held. A NOTIFIED reservation does not count, so it does not block placing
// another hold on the same title.
func (r *Reservations) HasActiveReservation(bookID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.reservations {
		if res.BookID == bookID && res.Status == domain.ReservationPending {
			return true
		}
	}
	return false
}

// Loading reports whether a load is in flight.
func (r *Reservations) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *Reservations) beginLoad() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = true
	r.loadSeq++
	return r.loadSeq
}

func (r *Reservations) endLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
}
