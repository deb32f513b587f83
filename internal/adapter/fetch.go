package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Fetch issues req once and decodes its result.
func Fetch[R any](ctx context.Context, api API, req Request[R]) (R, error) {
	var zero R

	resp, err := api.Do(ctx, req.Method(), req.Path(), req.Query())
	if err != nil {
		return zero, err
	}

	result, err := req.Decode(resp.Body)
	if err != nil {
		return zero, err
	}
	return result, nil
}

// FetchAll issues req and follows Link rel="next" headers, concatenating the
// elements of every page in order. A next link pointing at a page already
// fetched, the first one included, fails with [ErrPaginationLoop].
func FetchAll[E any](ctx context.Context, api API, req Request[[]E]) ([]E, error) {
	resp, err := api.Do(ctx, req.Method(), req.Path(), req.Query())
	if err != nil {
		return nil, err
	}

	var all []E
	visited := map[string]struct{}{}
	if resp.URL != "" {
		visited[pageKey(resp.URL)] = struct{}{}
	}
	for {
		page, err := req.Decode(resp.Body)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		next := NextLink(resp.Header)
		if next == "" {
			return all, nil
		}
		key := pageKey(next)
		if _, ok := visited[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrPaginationLoop, next)
		}
		visited[key] = struct{}{}

		if resp, err = api.Do(ctx, http.MethodGet, next, nil); err != nil {
			return nil, err
		}
	}
}

// pageKey normalizes a page URL so that links differing only in query
// parameter order compare equal.
func pageKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = u.Query().Encode()
	u.Fragment = ""
	return u.String()
}

// NextLink returns the rel="next" target of the Link header, or "".
func NextLink(header http.Header) string {
	for _, value := range header.Values("Link") {
		for _, link := range strings.Split(value, ",") {
			target, params, ok := strings.Cut(strings.TrimSpace(link), ";")
			if !ok {
				continue
			}
			target = strings.TrimSpace(target)
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, param := range strings.Split(params, ";") {
				key, val, _ := strings.Cut(strings.TrimSpace(param), "=")
				if strings.EqualFold(key, "rel") && strings.Trim(val, `"`) == "next" {
					return target[1 : len(target)-1]
				}
			}
		}
	}
	return ""
}

// jsonResult decodes a JSON body into R. Requests embed it to implement
// [Request.Decode].
type jsonResult[R any] struct{}

func (jsonResult[R]) Decode(body []byte) (R, error) {
	var result R
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	return result, nil
}

func noQuery() url.Values {
	return url.Values{}
}
