package tradervue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"
)

// ImportState is the server-side status of the account's import slot. Each
// account has a single slot: one import may be queued or processing at a
// time, and the slot reports ready when idle.
type ImportState string

const (
	ImportReady      ImportState = "ready"
	ImportQueued     ImportState = "queued"
	ImportProcessing ImportState = "processing"
	ImportSucceeded  ImportState = "succeeded"
	ImportFailed     ImportState = "failed"
)

// The server has been observed spelling the terminal failure state both
// "failed" and "failure"; "failed" is authoritative here and the alias is
// normalized on decode.
const importFailedAlias ImportState = "failure"

// inFlight reports whether the import is still being worked on.
func (s ImportState) inFlight() bool {
	return s == ImportQueued || s == ImportProcessing
}

func (s ImportState) known() bool {
	switch s {
	case ImportReady, ImportQueued, ImportProcessing, ImportSucceeded, ImportFailed:
		return true
	}
	return false
}

// ImportStatus is a snapshot of the import slot. Info carries the server's
// success/failure details (counts, skipped executions and the like) and is
// only populated for terminal states.
type ImportStatus struct {
	Status ImportState    `json:"status"`
	Info   map[string]any `json:"info,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// UnmarshalJSON normalizes the legacy "failure" spelling to ImportFailed.
func (s *ImportStatus) UnmarshalJSON(data []byte) error {
	type plain ImportStatus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Status == importFailedAlias {
		p.Status = ImportFailed
	}
	*s = ImportStatus(p)
	return nil
}

// ImportExecution is one execution row to import. DateTime, Symbol,
// Quantity and Price are required by the server; the fee fields and Option
// are omitted from the payload when nil.
type ImportExecution struct {
	DateTime   string   `json:"datetime"`
	Symbol     string   `json:"symbol"`
	Quantity   float64  `json:"quantity"`
	Price      float64  `json:"price"`
	Commission *float64 `json:"commission,omitempty"`
	TransFee   *float64 `json:"transfee,omitempty"`
	ECNFee     *float64 `json:"ecnfee,omitempty"`
	Option     string   `json:"option,omitempty"`
}

// ImportRequest describes an execution import job.
type ImportRequest struct {
	Executions []ImportExecution
	AccountTag string   // added to Tags as well; the server does not do that itself
	Tags       []string // tags to apply to the resulting trades

	AllowDuplicates    bool // disable the server's duplicate detection
	OverlayCommissions bool // update existing trades with commission/fee data only

	// The server allows one import at a time and answers 424 while busy.
	// Submission is retried up to ImportRetries times with a fixed 5 second
	// pause. Default 3.
	ImportRetries int

	// When WaitForCompletion is set, the call polls the import status up to
	// WaitRetries times (default 5), PollInterval apart (default 3s), until
	// the import leaves the queued/processing states.
	WaitForCompletion bool
	WaitRetries       int
	PollInterval      time.Duration
}

const (
	defaultImportRetries = 3
	defaultWaitRetries   = 5
	defaultPollInterval  = 3 * time.Second

	// busyRetryPause is how long to wait after a 424 before resubmitting.
	busyRetryPause = 5 * time.Second
)

// GetImportStatus queries the state of the account's import slot. A status
// string outside the known set is a protocol error.
func (c *Client) GetImportStatus(ctx context.Context) (*ImportStatus, error) {
	st, err := fetchObject[ImportStatus](ctx, c, kindImports, "", nil, "", nil)
	if err != nil {
		return nil, err
	}
	if st.Status == "" {
		c.log.Errorf("Unable to find 'status' key in import status result")
		return nil, fmt.Errorf("import status response has no status field")
	}
	if !st.Status.known() {
		c.log.Errorf("Unexpected status '%s' for import status. Check API and update library", st.Status)
		return nil, fmt.Errorf("unrecognized import status %q", st.Status)
	}
	return &st, nil
}

// ImportExecutions submits an execution import job.
//
// Without WaitForCompletion the returned status is the queued snapshot from
// a successful submission. With it, the call polls until the import reaches
// a terminal state and returns that snapshot; a failed import is reported
// through the status (Status == ImportFailed), not through the error, since
// the caller must inspect Info for partial-failure details either way.
func (c *Client) ImportExecutions(ctx context.Context, req ImportRequest) (*ImportStatus, error) {
	if len(req.Executions) == 0 {
		return nil, fmt.Errorf("found 0 executions to import, must specify at least 1: %w", ErrInvalidArgument)
	}

	retries := req.ImportRetries
	if retries <= 0 {
		retries = defaultImportRetries
	}
	waitRetries := req.WaitRetries
	if waitRetries <= 0 {
		waitRetries = defaultWaitRetries
	}
	interval := req.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	data := map[string]any{
		"executions":          req.Executions,
		"allow_duplicates":    req.AllowDuplicates,
		"overlay_commissions": req.OverlayCommissions,
	}

	// The account tag is not applied automatically on the server side; it
	// has to appear in the tag list as well.
	tags := req.Tags
	if req.AccountTag != "" {
		data["account_tag"] = req.AccountTag
		if !slices.Contains(tags, req.AccountTag) {
			tags = append(slices.Clone(tags), req.AccountTag)
		}
	}
	if tags != nil {
		data["tags"] = tags
	}

	queued, err := c.submitImport(ctx, data, retries)
	if err != nil {
		return nil, err
	}
	if !req.WaitForCompletion {
		return queued, nil
	}
	return c.waitForImport(ctx, waitRetries, interval)
}

// submitImport posts the import payload, retrying on the 424 busy signal
// until the server reports a queued import or the retry budget runs out.
func (c *Client) submitImport(ctx context.Context, data map[string]any, retries int) (*ImportStatus, error) {
	for attempt := 0; attempt < retries; attempt++ {
		r, err := c.post(ctx, c.endpoint(kindImports), data)
		if err != nil {
			return nil, err
		}

		switch r.status {
		case http.StatusOK:
			var st ImportStatus
			if err := json.Unmarshal(r.body, &st); err != nil {
				return nil, fmt.Errorf("decode import response: %w", err)
			}
			if st.Status != ImportQueued {
				c.log.Errorf("Unexpected status '%s' from importing executions: %s", st.Status, r.body)
				return nil, fmt.Errorf("import submission answered status %q, want %q", st.Status, ImportQueued)
			}
			c.log.Debugf("Import request successful: %s", r.body)
			return &st, nil

		case http.StatusFailedDependency:
			var busy struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(r.body, &busy)
			c.log.Warnf("Waiting %s and retrying import: %s", busyRetryPause, busy.Error)
			if err := c.sleep(ctx, busyRetryPause); err != nil {
				return nil, err
			}

		default:
			return nil, c.badResponse(r, "Unable to import executions", false)
		}
	}

	c.log.Errorf("Unable to import executions after %d attempts. Giving up.", retries)
	return nil, fmt.Errorf("import not accepted after %d attempts", retries)
}

// waitForImport polls the import slot until the import leaves the
// queued/processing states or the poll budget runs out, then interprets the
// terminal state.
func (c *Client) waitForImport(ctx context.Context, retries int, interval time.Duration) (*ImportStatus, error) {
	c.log.Debug("Waiting for import to complete...")

	st, err := c.GetImportStatus(ctx)
	if err != nil {
		return nil, err
	}
	for left := retries; st.Status.inFlight() && left > 0; left-- {
		if err := c.sleep(ctx, interval); err != nil {
			return nil, err
		}
		if st, err = c.GetImportStatus(ctx); err != nil {
			return nil, err
		}
	}

	switch st.Status {
	case ImportSucceeded:
		c.log.Debug("Import was successful")
		return st, nil
	case ImportFailed:
		c.log.Error("Import had some failures")
		return st, nil
	case ImportReady:
		// The slot went idle without ever reporting success or failure.
		c.log.Error("Found importer in ready state, but never saw success/failure")
		return nil, fmt.Errorf("import finished without reporting success or failure")
	case ImportQueued, ImportProcessing:
		c.log.Errorf("Import is still being processed after %d attempts to query status. Giving up", retries)
		return nil, fmt.Errorf("import still %s after %d status polls", st.Status, retries)
	default:
		c.log.Errorf("Unsupported import status '%s'", st.Status)
		return nil, fmt.Errorf("unrecognized import status %q", st.Status)
	}
}
