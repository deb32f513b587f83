package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// page is one slice of a paginated listing.
type page struct {
	number  int
	perPage int
	last    int
}

func (h *Handler) parsePage(r *http.Request) (page, error) {
	query := r.URL.Query()
	p := page{number: 1, perPage: h.perPage}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page{}, fmt.Errorf("%w: page=%q", ErrInvalidPage, raw)
		}
		p.number = n
	}
	if raw := query.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page{}, fmt.Errorf("%w: per_page=%q", ErrInvalidPage, raw)
		}
		p.perPage = min(n, maxPerPage)
	}
	return p, nil
}

// paginate cuts items to the requested page and advertises the other pages
// in a Link header.
func paginate[E any](w http.ResponseWriter, r *http.Request, p page, items []E) []E {
	p.last = max(1, (len(items)+p.perPage-1)/p.perPage)

	links := []string{
		pageLink(r, p.number, p.perPage, "current"),
		pageLink(r, 1, p.perPage, "first"),
		pageLink(r, p.last, p.perPage, "last"),
	}
	if p.number < p.last {
		links = append(links, pageLink(r, p.number+1, p.perPage, "next"))
	}
	if p.number > 1 {
		links = append(links, pageLink(r, min(p.number-1, p.last), p.perPage, "prev"))
	}
	w.Header().Set("Link", strings.Join(links, ","))

	start := (p.number - 1) * p.perPage
	if start >= len(items) {
		return []E{}
	}
	end := min(start+p.perPage, len(items))
	return items[start:end]
}

func pageLink(r *http.Request, number, perPage int, rel string) string {
	u := url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(number))
	query.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = query.Encode()

	return fmt.Sprintf(`<%s>; rel="%s"`, u.String(), rel)
}

func requestScheme(r *http.Request) string {
	switch {
	case r.URL.Scheme != "":
		return r.URL.Scheme
	case r.Header.Get("X-Forwarded-Proto") != "":
		return r.Header.Get("X-Forwarded-Proto")
	case r.TLS != nil:
		return "https"
	default:
		return "http"
	}
}
