package render

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dualion/controldiners/internal/models"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

var ErrInvalidPageRequest = errors.New("invalid page request")

// ParsePageRequest reads 'page' (zero based) and 'size' query params
// Missing params fall back to first page of models.DefaultPageSize items
func ParsePageRequest(r *http.Request) (models.PageRequest, error) {
	page := models.PageRequest{Page: 0, Size: models.DefaultPageSize}
	query := r.URL.Query()

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, fmt.Errorf("%w: page must be non negative integer", ErrInvalidPageRequest)
		}
		page.Page = n
	}

	if v := query.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, fmt.Errorf("%w: size must be positive integer", ErrInvalidPageRequest)
		}
		page.Size = min(n, models.MaxPageSize)
	}

	return page, nil
}

// PageRequestOrError renders error response if page params are invalid
func PageRequestOrError(w http.ResponseWriter, r *http.Request) (models.PageRequest, bool) {
	page, err := ParsePageRequest(r)
	if err != nil {
		ServiceError(w, err.Error(), http.StatusBadRequest)
		return page, false
	}
	return page, true
}

// PaginationHeaders sets 'X-Total-Count' and 'Link' headers with next, prev, last and first pages
func PaginationHeaders[T any](w http.ResponseWriter, u *url.URL, page models.Page[T]) {
	w.Header().Set(HeaderTotalCount, strconv.FormatInt(page.Total, 10))

	lastPage := max(page.TotalPages()-1, 0)

	links := make([]string, 0, 4)
	if page.Page+1 <= lastPage {
		links = append(links, pageLink(u, page.Page+1, page.Size, "next"))
	}
	if page.Page > 0 {
		links = append(links, pageLink(u, page.Page-1, page.Size, "prev"))
	}
	links = append(links, pageLink(u, lastPage, page.Size, "last"))
	links = append(links, pageLink(u, 0, page.Size, "first"))

	w.Header().Set(HeaderLink, strings.Join(links, ","))
}

func pageLink(u *url.URL, page int, size int, rel string) string {
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	link := url.URL{Path: u.Path, RawQuery: query.Encode()}
	return fmt.Sprintf(`<%s>; rel="%s"`, link.String(), rel)
}
