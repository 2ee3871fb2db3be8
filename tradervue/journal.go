package tradervue

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// createDateFormat is the YYYY-MM-DD layout used when creating journal
// entries and setting user trial-end dates.
const createDateFormat = "2006-01-02"

// JournalFilter selects journal entries for GetJournals. Date asks for the
// entry on one specific day and must not be combined with StartDate or
// EndDate. MaxEntries defaults to 25.
type JournalFilter struct {
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	MaxEntries int
}

// GetJournals queries for journal entries matching the filter.
func (c *Client) GetJournals(ctx context.Context, f JournalFilter) ([]JournalEntry, error) {
	if f.Date != nil && (f.StartDate != nil || f.EndDate != nil) {
		return nil, fmt.Errorf("cannot specify StartDate or EndDate if Date is specified: %w", ErrInvalidArgument)
	}

	query := url.Values{}
	if f.Date != nil {
		query.Set("d", f.Date.Format(queryDateFormat))
	}
	if f.StartDate != nil {
		query.Set("startdate", f.StartDate.Format(queryDateFormat))
	}
	if f.EndDate != nil {
		query.Set("enddate", f.EndDate.Format(queryDateFormat))
	}

	max := f.MaxEntries
	if max <= 0 {
		max = defaultMaxResults
	}

	return fetchList[JournalEntry](ctx, c, kindJournal, query, "journal_entries", max)
}

// GetJournal fetches detailed information about one journal entry.
func (c *Client) GetJournal(ctx context.Context, journalID string) (*JournalEntry, error) {
	j, err := fetchObject[JournalEntry](ctx, c, kindJournal, journalID, nil, "", nil)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJournalByDate looks up the journal entry for a specific day. It
// returns (nil, nil) when no entry exists on that date.
func (c *Client) GetJournalByDate(ctx context.Context, date time.Time) (*JournalEntry, error) {
	entries, err := c.GetJournals(ctx, JournalFilter{Date: &date, MaxEntries: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return c.GetJournal(ctx, entries[0].ID.String())
}

// CreateJournal creates a new journal entry for the given date, the API
// equivalent of the site's 'Create New Journal Entry' feature. It returns
// the new entry ID, or the Location header instead when returnURL is set.
func (c *Client) CreateJournal(ctx context.Context, date time.Time, notes *string, returnURL bool) (string, error) {
	day := date.Format(createDateFormat)
	data := map[string]any{"date": day}
	if notes != nil {
		data["notes"] = *notes
	}

	return createObject(ctx, c, kindJournal, day, data, returnURL)
}

// UpdateJournal modifies the notes of a journal entry.
func (c *Client) UpdateJournal(ctx context.Context, journalID string, notes *string) error {
	data := map[string]any{}
	if notes != nil {
		data["notes"] = *notes
	}
	return updateObject(ctx, c, kindJournal, journalID, data)
}

// DeleteJournal deletes a journal entry.
func (c *Client) DeleteJournal(ctx context.Context, journalID string) error {
	return deleteObject(ctx, c, kindJournal, journalID)
}
