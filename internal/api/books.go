package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/readerly/circulate/internal/domain"
)

// ListBooks queries the catalog. A nil or zero query returns the full catalog.
func (c *Client) ListBooks(ctx context.Context, query *domain.BookQuery) ([]domain.Book, error) {
	params := url.Values{}
	if query != nil {
		if query.Text != "" {
			params.Set("q", query.Text)
		}
		if query.Title != "" {
			params.Set("title", query.Title)
		}
		if query.Author != "" {
			params.Set("author", query.Author)
		}
		if query.Genre != "" {
			params.Set("genre", query.Genre)
		}
		if query.ISBN != "" {
			params.Set("isbn", query.ISBN)
		}
		if query.Page > 0 {
			params.Set("page", strconv.Itoa(query.Page))
		}
		if query.PageSize > 0 {
			params.Set("pageSize", strconv.Itoa(query.PageSize))
		}
	}

	var list bookList
	if err := c.doRequest(ctx, http.MethodGet, "/books", params, nil, &list); err != nil {
		return nil, err
	}
	return mapBooks(list.Items), nil
}

// GetBook fetches a single catalog record by id.
func (c *Client) GetBook(ctx context.Context, id string) (domain.Book, error) {
	var dto bookDTO
	if err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/books/%s", id), nil, nil, &dto); err != nil {
		return domain.Book{}, err
	}
	return mapBook(dto), nil
}

// AddBook creates a catalog record and returns the server's version of it.
func (c *Client) AddBook(ctx context.Context, book domain.NewBook) (domain.Book, error) {
	payload := bookCreateRequest{
		ISBN:            book.ISBN,
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		CoverURL:        book.CoverURL,
		Summary:         book.Summary,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
	}

	var dto bookDTO
	if err := c.doRequest(ctx, http.MethodPost, "/books", nil, payload, &dto); err != nil {
		return domain.Book{}, err
	}
	return mapBook(dto), nil
}

// UpdateBook applies a partial change set and returns the updated record.
func (c *Client) UpdateBook(ctx context.Context, id string, patch domain.BookPatch) (domain.Book, error) {
	payload := bookUpdateRequest{
		ISBN:            patch.ISBN,
		Title:           patch.Title,
		Author:          patch.Author,
		Genre:           patch.Genre,
		CoverURL:        patch.CoverURL,
		Summary:         patch.Summary,
		TotalCopies:     patch.TotalCopies,
		AvailableCopies: patch.AvailableCopies,
	}

	var dto bookDTO
	if err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/books/%s", id), nil, payload, &dto); err != nil {
		return domain.Book{}, err
	}
	return mapBook(dto), nil
}

// DeleteBook removes a catalog record.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/books/%s", id), nil, nil, nil)
}
