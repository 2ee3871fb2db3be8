package tradervue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// The five top-level API collections.
const (
	kindTrades  = "trades"
	kindUsers   = "users"
	kindJournal = "journal"
	kindNotes   = "notes"
	kindImports = "imports"
)

// maxPageSize is the largest count the server accepts per page.
const maxPageSize = 100

// createObject POSTs body to /<kind>. A 201 is success; the result is the
// Location header when returnURL is set, otherwise the id field of the
// response body. label only decorates log lines.
func createObject(ctx context.Context, c *Client, kind, label string, body map[string]any, returnURL bool) (string, error) {
	r, err := c.post(ctx, c.endpoint(kind), body)
	if err != nil {
		return "", err
	}

	if r.status != http.StatusCreated {
		return "", c.badResponse(r, fmt.Sprintf("%s-CREATE[%s]: FAILED", strings.ToUpper(kind), label), false)
	}

	c.log.Debugf("%s-CREATE[%s]: SUCCESS", strings.ToUpper(kind), label)
	if returnURL {
		return r.header.Get("Location"), nil
	}

	var created struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(r.body, &created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	return created.ID.String(), nil
}

// fetchObject GETs /<kind>[/<id>][/<fragment>...] and decodes the body into
// T. When resultKey is non-empty the body must be an object containing that
// key; its absence is a data-contract violation.
func fetchObject[T any](ctx context.Context, c *Client, kind, objectID string, fragments []string, resultKey string, query url.Values) (T, error) {
	var zero T

	parts := []string{kind}
	if objectID != "" {
		parts = append(parts, objectID)
	}
	parts = append(parts, fragments...)

	fdebug := ""
	if len(fragments) > 0 {
		fdebug = "[" + strings.Join(fragments, "/") + "]"
	}

	r, err := c.get(ctx, c.endpoint(parts...), query)
	if err != nil {
		return zero, err
	}

	if r.status != http.StatusOK {
		return zero, c.badResponse(r, fmt.Sprintf("%s-GET[%s]%s: FAILED", strings.ToUpper(kind), objectID, fdebug), true)
	}
	c.log.Debugf("%s-GET[%s]%s: SUCCESS", strings.ToUpper(kind), objectID, fdebug)

	raw := r.body
	if resultKey != "" {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(r.body, &keyed); err != nil {
			return zero, fmt.Errorf("decode %s response: %w", kind, err)
		}
		inner, ok := keyed[resultKey]
		if !ok {
			c.log.Errorf("Unable to find '%s' key in %s results: %s", resultKey, kind, r.body)
			return zero, fmt.Errorf("missing '%s' key in %s response", resultKey, kind)
		}
		raw = inner
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return zero, fmt.Errorf("decode %s response: %w", kind, err)
	}
	return result, nil
}

// updateObject PUTs body to /<kind>/<id>. An empty body is a caller error
// and short-circuits without touching the network.
func updateObject(ctx context.Context, c *Client, kind, objectID string, body map[string]any) error {
	if len(body) == 0 {
		c.log.Warnf("No updates specified for %s ID %s. Not taking further action", kind, objectID)
		return ErrNoFields
	}

	fields := make([]string, 0, len(body))
	for k := range body {
		fields = append(fields, k)
	}

	r, err := c.put(ctx, c.endpoint(kind, objectID), body)
	if err != nil {
		return err
	}

	if r.status != http.StatusOK {
		return c.badResponse(r, fmt.Sprintf("%s-UPDATE[%s]: (%s) FAILED", strings.ToUpper(kind), objectID, strings.Join(fields, " ")), false)
	}
	c.log.Debugf("%s-UPDATE[%s]: (%s) SUCCESS", strings.ToUpper(kind), objectID, strings.Join(fields, " "))
	return nil
}

// deleteObject DELETEs /<kind>/<id>.
func deleteObject(ctx context.Context, c *Client, kind, objectID string) error {
	r, err := c.delete(ctx, c.endpoint(kind, objectID))
	if err != nil {
		return err
	}

	if r.status != http.StatusOK {
		return c.badResponse(r, fmt.Sprintf("%s-DELETE[%s]: FAILED", strings.ToUpper(kind), objectID), false)
	}
	c.log.Debugf("%s-DELETE[%s]: SUCCESS", strings.ToUpper(kind), objectID)
	return nil
}

// fetchList aggregates up to max items of a paginated collection. Pages are
// requested with 1-based page numbers and count = min(100, remaining); the
// loop stops at max items or on the first empty page. Any page error
// discards the partial result.
func fetchList[T any](ctx context.Context, c *Client, kind string, query url.Values, resultKey string, max int) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}

	var objects []T
	for page := 1; len(objects) < max; page++ {
		remaining := max - len(objects)
		count := remaining
		if count > maxPageSize {
			count = maxPageSize
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("count", strconv.Itoa(count))

		batch, err := fetchObject[[]T](ctx, c, kind, "", nil, resultKey, query)
		if err != nil {
			c.log.Errorf("Found error condition when querying %v", query)
			return nil, err
		}
		if len(batch) == 0 {
			c.log.Debugf("No objects were found when querying %v", query)
			break
		}
		c.log.Debugf("%d object(s) were found when querying %v", len(batch), query)
		objects = append(objects, batch...)
	}

	return objects, nil
}
