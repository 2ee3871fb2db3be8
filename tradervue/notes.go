package tradervue

import "context"

// GetNotes fetches up to max journal notes. max defaults to 25.
func (c *Client) GetNotes(ctx context.Context, max int) ([]Note, error) {
	if max <= 0 {
		max = defaultMaxResults
	}
	return fetchList[Note](ctx, c, kindNotes, nil, "journal_notes", max)
}

// GetNote fetches detailed information about one journal note.
func (c *Client) GetNote(ctx context.Context, noteID string) (*Note, error) {
	n, err := fetchObject[Note](ctx, c, kindNotes, noteID, nil, "", nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNote creates a new journal note, the API equivalent of the site's
// 'Create New Note' feature. It returns the new note ID, or the Location
// header instead when returnURL is set.
func (c *Client) CreateNote(ctx context.Context, notes *string, returnURL bool) (string, error) {
	data := map[string]any{}
	if notes != nil {
		data["notes"] = *notes
	}
	return createObject(ctx, c, kindNotes, "", data, returnURL)
}

// UpdateNote modifies the text of a journal note.
func (c *Client) UpdateNote(ctx context.Context, noteID string, notes *string) error {
	data := map[string]any{}
	if notes != nil {
		data["notes"] = *notes
	}
	return updateObject(ctx, c, kindNotes, noteID, data)
}

// DeleteNote deletes a journal note.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return deleteObject(ctx, c, kindNotes, noteID)
}
