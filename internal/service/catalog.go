// Package service holds the client-side state holders. Each holder owns one
// in-memory collection synchronized against the backend: a load replaces the
// collection wholesale, point mutations patch it by id, and derived views are
// computed on demand. Collections keep stale data until the next load.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/readerly/circulate/internal/domain"
)

// Snapshotter persists the last full catalog load for offline use. It is
// optional; a nil Snapshotter disables persistence.
type Snapshotter interface {
	SaveBooks(books []domain.Book) error
}

// Catalog is the book holder. It owns the last-known result set of the most
// recent load or search, replaced wholesale on every load.
type Catalog struct {
	repo     domain.BookRepository
	snapshot Snapshotter
	logger   *slog.Logger

	mu      sync.RWMutex
	books   []domain.Book
	loading bool
	loadSeq uint64
}

// NewCatalog creates an empty catalog holder. It does not auto-load; callers
// trigger the first Load when the catalog is first needed.
func NewCatalog(repo domain.BookRepository, snapshot Snapshotter, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{repo: repo, snapshot: snapshot, logger: logger}
}

// Load issues one catalog query and on success replaces the held collection
// with the normalized response, in server order. A nil query loads the full
// catalog. Responses of loads that were superseded by a newer Load call are
// dropped so a slow stale response cannot overwrite a fresher collection.
func (c *Catalog) Load(ctx context.Context, query *domain.BookQuery) ([]domain.Book, error) {
	seq := c.beginLoad()
	defer c.endLoad()

	books, err := c.repo.ListBooks(ctx, query)
	if err != nil {
		c.logger.Error("failed to load books", "error", err)
		return nil, err
	}

	// The holder keeps its own copy so the slice handed back to the caller
	// stays a stable snapshot across later point mutations.
	c.mu.Lock()
	stale := seq != c.loadSeq
	if !stale {
		c.books = make([]domain.Book, len(books))
		copy(c.books, books)
	}
	c.mu.Unlock()

	if stale {
		c.logger.Debug("dropped stale book load", "seq", seq)
		return books, nil
	}

	if c.snapshot != nil && (query == nil || query.IsZero()) {
		if err := c.snapshot.SaveBooks(books); err != nil {
			c.logger.Warn("failed to persist catalog snapshot", "error", err)
		}
	}

	c.logger.Info("loaded books", "count", len(books))
	return books, nil
}

// Search is a filtered Load. The result replaces the full held collection;
// clearing a search means calling Load with no filter again, there is no
// cached unfiltered catalog to restore.
func (c *Catalog) Search(ctx context.Context, query domain.BookQuery) ([]domain.Book, error) {
	return c.Load(ctx, &query)
}

// GetByID always fetches fresh from the server, never from the held
// collection. Per-item views must reflect current inventory, not a possibly
// stale list snapshot.
func (c *Catalog) GetByID(ctx context.Context, id string) (domain.Book, error) {
	return c.repo.GetBook(ctx, id)
}

// Add creates a record and prepends the server's version to the collection.
func (c *Catalog) Add(ctx context.Context, book domain.NewBook) (domain.Book, error) {
	created, err := c.repo.AddBook(ctx, book)
	if err != nil {
		return domain.Book{}, err
	}

	c.mu.Lock()
	c.books = append([]domain.Book{created}, c.books...)
	c.mu.Unlock()

	c.logger.Info("added book", "id", created.ID, "title", created.Title)
	return created, nil
}

// Update applies a partial change set and splices the server's updated
// record back into the collection by id, position preserved.
func (c *Catalog) Update(ctx context.Context, id string, patch domain.BookPatch) (domain.Book, error) {
	updated, err := c.repo.UpdateBook(ctx, id, patch)
	if err != nil {
		return domain.Book{}, err
	}

	c.mu.Lock()
	for i := range c.books {
		if c.books[i].ID == id {
			c.books[i] = updated
			break
		}
	}
	c.mu.Unlock()

	return updated, nil
}

// SetAvailableCopies is an Update limited to the available-copies count.
func (c *Catalog) SetAvailableCopies(ctx context.Context, id string, n int) (domain.Book, error) {
	return c.Update(ctx, id, domain.BookPatch{AvailableCopies: &n})
}

// Remove deletes a record and filters it out of the collection by id.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	if err := c.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	kept := make([]domain.Book, 0, len(c.books))
	for _, b := range c.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.books = kept
	c.mu.Unlock()

	c.logger.Info("removed book", "id", id)
	return nil
}

// Cached reads the held collection synchronously with no network fallback.
func (c *Catalog) Cached(id string) (domain.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.books {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Book{}, false
}

// Books returns a copy of the held collection.
func (c *Catalog) Books() []domain.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	books := make([]domain.Book, len(c.books))
	copy(books, c.books)
	return books
}

// Loading reports whether a load is in flight.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Catalog) beginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.loadSeq++
	return c.loadSeq
}

// endLoad runs deferred so the loading flag clears on every exit path.
func (c *Catalog) endLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}
