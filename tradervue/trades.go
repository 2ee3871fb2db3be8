package tradervue

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// queryDateFormat is the MM/DD/YYYY layout trade and journal searches use.
const queryDateFormat = "01/02/2006"

// defaultMaxResults bounds list calls when the caller does not say otherwise.
const defaultMaxResults = 25

// NewTrade describes a trade to create. Symbol is required; nil pointer
// fields are omitted from the request entirely.
type NewTrade struct {
	Symbol      string
	Notes       *string
	InitialRisk *float64
	Shared      bool
	Tags        []string
}

// TradeUpdate carries the fields to modify on an existing trade. Nil fields
// are left untouched on the server; a non-nil empty Tags slice clears the
// tag list.
type TradeUpdate struct {
	Notes       *string
	Shared      *bool
	InitialRisk *float64
	Tags        []string
}

// TradeFilter selects trades for GetTrades. Zero-valued fields are not part
// of the query. MaxTrades defaults to 25.
type TradeFilter struct {
	Symbol    string
	TagExpr   string     // server-side tag expression, e.g. "momentum AND NOT earnings"
	Side      string     // "Long" or "Short", case-insensitive
	Duration  string     // "Intraday" or "Multiday", case-insensitive
	StartDate *time.Time // trades on or after this date
	EndDate   *time.Time // trades on or before this date
	Winners   *bool      // true = positive gross P&L, false = negative
	MaxTrades int
}

var (
	sideRE     = regexp.MustCompile(`(?i)^(long|short)$`)
	durationRE = regexp.MustCompile(`(?i)^(intraday|multiday)$`)

	// Lowercase boolean operators in a tag expression are silently ignored
	// by the server, which tends to surprise people.
	dubiousTagRE = regexp.MustCompile(`\s(and|or)\s`)
)

// CreateTrade creates a new trade, the API equivalent of the site's 'New
// Trade' feature. It returns the new trade ID, or the Location header
// instead when returnURL is set.
func (c *Client) CreateTrade(ctx context.Context, t NewTrade, returnURL bool) (string, error) {
	data := map[string]any{
		"symbol": t.Symbol,
		"shared": t.Shared,
	}
	if t.Notes != nil {
		data["notes"] = *t.Notes
	}
	if t.InitialRisk != nil {
		data["initial_risk"] = *t.InitialRisk
	}
	if len(t.Tags) > 0 {
		data["tags"] = t.Tags
	}

	return createObject(ctx, c, kindTrades, t.Symbol, data, returnURL)
}

// GetTrade fetches detailed information about one trade.
func (c *Client) GetTrade(ctx context.Context, tradeID string) (*Trade, error) {
	t, err := fetchObject[Trade](ctx, c, kindTrades, tradeID, nil, "", nil)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTrades queries for trades matching the filter. Unset filter fields are
// not part of the query.
func (c *Client) GetTrades(ctx context.Context, f TradeFilter) ([]Trade, error) {
	query := url.Values{}
	if f.Symbol != "" {
		query.Set("symbol", f.Symbol)
	}

	tagWarningOnNoResults := false
	if f.TagExpr != "" {
		if dubiousTagRE.MatchString(f.TagExpr) {
			tagWarningOnNoResults = true
		}
		query.Set("tag", f.TagExpr)
	}

	if f.Side != "" {
		if !sideRE.MatchString(f.Side) {
			return nil, fmt.Errorf("side must be 'Long' or 'Short', saw %q: %w", f.Side, ErrInvalidArgument)
		}
		query.Set("side", strings.ToUpper(f.Side[:1]))
	}

	if f.Duration != "" {
		if !durationRE.MatchString(f.Duration) {
			return nil, fmt.Errorf("duration must be 'Intraday' or 'Multiday', saw %q: %w", f.Duration, ErrInvalidArgument)
		}
		query.Set("duration", strings.ToUpper(f.Duration[:1]))
	}

	if f.StartDate != nil {
		query.Set("startdate", f.StartDate.Format(queryDateFormat))
	}
	if f.EndDate != nil {
		query.Set("enddate", f.EndDate.Format(queryDateFormat))
	}
	if f.Winners != nil {
		if *f.Winners {
			query.Set("plgross", "W")
		} else {
			query.Set("plgross", "L")
		}
	}

	max := f.MaxTrades
	if max <= 0 {
		max = defaultMaxResults
	}

	trades, err := fetchList[Trade](ctx, c, kindTrades, query, "trades", max)
	if err != nil {
		return nil, err
	}

	if tagWarningOnNoResults && len(trades) == 0 {
		c.log.Warnf("No results found for dubious tag expression %q. Make sure AND and OR are upper", f.TagExpr)
	}
	return trades, nil
}

// GetTradeExecutions fetches the executions recorded for a trade.
func (c *Client) GetTradeExecutions(ctx context.Context, tradeID string) ([]Execution, error) {
	return fetchObject[[]Execution](ctx, c, kindTrades, tradeID, []string{"executions"}, "executions", nil)
}

// GetTradeComments fetches the comments left on a trade.
func (c *Client) GetTradeComments(ctx context.Context, tradeID string) ([]Comment, error) {
	return fetchObject[[]Comment](ctx, c, kindTrades, tradeID, []string{"comments"}, "comments", nil)
}

// UpdateTrade modifies the set fields of a trade. At least one field of u
// must be set, otherwise ErrNoFields is returned without a request.
func (c *Client) UpdateTrade(ctx context.Context, tradeID string, u TradeUpdate) error {
	data := map[string]any{}
	if u.Notes != nil {
		data["notes"] = *u.Notes
	}
	if u.Shared != nil {
		data["shared"] = *u.Shared
	}
	if u.InitialRisk != nil {
		data["initial_risk"] = *u.InitialRisk
	}
	if u.Tags != nil {
		data["tags"] = u.Tags
	}

	return updateObject(ctx, c, kindTrades, tradeID, data)
}

// DeleteTrade deletes a trade.
func (c *Client) DeleteTrade(ctx context.Context, tradeID string) error {
	return deleteObject(ctx, c, kindTrades, tradeID)
}
