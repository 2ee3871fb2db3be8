package tradervue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSleep records requested sleep durations instead of blocking.
func fakeSleep(c *Client) *[]time.Duration {
	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return &slept
}

func sampleExecutions() []ImportExecution {
	return []ImportExecution{
		{DateTime: "2024-03-01T09:31:12-05:00", Symbol: "AAPL", Quantity: 100, Price: 182.43},
		{DateTime: "2024-03-01T09:45:03-05:00", Symbol: "AAPL", Quantity: -100, Price: 183.10},
	}
}

func TestImportExecutionsValidation(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	_, err := c.ImportExecutions(context.Background(), ImportRequest{})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, requests)
}

func TestImportExecutionsPayload(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"status": "queued"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)

	t.Run("defaults", func(t *testing.T) {
		_, err := c.ImportExecutions(context.Background(), ImportRequest{Executions: sampleExecutions()})
		require.NoError(t, err)

		assert.Equal(t, false, payload["allow_duplicates"])
		assert.Equal(t, false, payload["overlay_commissions"])
		assert.NotContains(t, payload, "account_tag")
		assert.NotContains(t, payload, "tags")

		execs, ok := payload["executions"].([]any)
		require.True(t, ok)
		require.Len(t, execs, 2)
		first := execs[0].(map[string]any)
		assert.Equal(t, "AAPL", first["symbol"])
		assert.NotContains(t, first, "commission", "unset fee fields stay out of the payload")
	})

	t.Run("account tag joins the tag list", func(t *testing.T) {
		_, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions: sampleExecutions(),
			AccountTag: "ibkr-main",
			Tags:       []string{"scalps"},
		})
		require.NoError(t, err)

		assert.Equal(t, "ibkr-main", payload["account_tag"])
		assert.Equal(t, []any{"scalps", "ibkr-main"}, payload["tags"])
	})

	t.Run("account tag not duplicated", func(t *testing.T) {
		_, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions: sampleExecutions(),
			AccountTag: "ibkr-main",
			Tags:       []string{"ibkr-main", "scalps"},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"ibkr-main", "scalps"}, payload["tags"])
	})

	t.Run("flags", func(t *testing.T) {
		_, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:         sampleExecutions(),
			AllowDuplicates:    true,
			OverlayCommissions: true,
		})
		require.NoError(t, err)
		assert.Equal(t, true, payload["allow_duplicates"])
		assert.Equal(t, true, payload["overlay_commissions"])
	})
}

func TestImportSubmissionBusyRetry(t *testing.T) {
	posts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
		if posts <= 2 {
			w.WriteHeader(http.StatusFailedDependency)
			w.Write([]byte(`{"error": "import already in progress"}`))
			return
		}
		w.Write([]byte(`{"status": "queued"}`))
	}))
	defer server.Close()

	c, hook := newTestClient(server.URL)
	slept := fakeSleep(c)

	st, err := c.ImportExecutions(context.Background(), ImportRequest{Executions: sampleExecutions()})
	require.NoError(t, err)

	assert.Equal(t, ImportQueued, st.Status)
	assert.Equal(t, 3, posts)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, *slept)

	// The busy signal is logged as a warning, not an error.
	warned := false
	for _, e := range hook.Entries {
		if e.Message == "Waiting 5s and retrying import: import already in progress" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestImportSubmissionBusyExhausted(t *testing.T) {
	posts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.WriteHeader(http.StatusFailedDependency)
		w.Write([]byte(`{"error": "import already in progress"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	fakeSleep(c)

	_, err := c.ImportExecutions(context.Background(), ImportRequest{
		Executions:    sampleExecutions(),
		ImportRetries: 4,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 attempts")
	assert.Equal(t, 4, posts, "submission retried exactly ImportRetries times")
}

func TestImportSubmissionFatalStatus(t *testing.T) {
	posts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "server exploded"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	fakeSleep(c)

	_, err := c.ImportExecutions(context.Background(), ImportRequest{Executions: sampleExecutions()})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 1, posts, "non-busy failures are not retried")
}

func TestImportSubmissionUnexpectedState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "processing"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	_, err := c.ImportExecutions(context.Background(), ImportRequest{Executions: sampleExecutions()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queued")
}

func TestImportWithoutWait(t *testing.T) {
	gets := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
		}
		w.Write([]byte(`{"status": "queued"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	st, err := c.ImportExecutions(context.Background(), ImportRequest{Executions: sampleExecutions()})
	require.NoError(t, err)

	assert.Equal(t, ImportQueued, st.Status)
	assert.Equal(t, 0, gets, "no status polls without WaitForCompletion")
}

// importServer answers the submission POST with queued, then walks the GET
// status through the given sequence.
func importServer(t *testing.T, statuses []string) (*httptest.Server, *int) {
	t.Helper()
	polls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Write([]byte(`{"status": "queued"}`))
		case http.MethodGet:
			st := statuses[len(statuses)-1]
			if polls < len(statuses) {
				st = statuses[polls]
			}
			polls++
			json.NewEncoder(w).Encode(map[string]any{"status": st})
		}
	}))
	return server, &polls
}

func TestImportWaitForCompletion(t *testing.T) {
	t.Run("succeeded after two waits", func(t *testing.T) {
		server, polls := importServer(t, []string{"queued", "processing", "succeeded"})
		defer server.Close()

		c, _ := newTestClient(server.URL)
		slept := fakeSleep(c)

		st, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:        sampleExecutions(),
			WaitForCompletion: true,
			PollInterval:      2 * time.Second,
		})
		require.NoError(t, err)

		assert.Equal(t, ImportSucceeded, st.Status)
		assert.Equal(t, 3, *polls)
		assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *slept)
	})

	t.Run("failed is reported through the status", func(t *testing.T) {
		server, _ := importServer(t, []string{"queued", "failed"})
		defer server.Close()

		c, _ := newTestClient(server.URL)
		fakeSleep(c)

		st, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:        sampleExecutions(),
			WaitForCompletion: true,
		})
		require.NoError(t, err, "a failed import is not a call failure")
		assert.Equal(t, ImportFailed, st.Status)
	})

	t.Run("legacy failure spelling normalized", func(t *testing.T) {
		server, _ := importServer(t, []string{"failure"})
		defer server.Close()

		c, _ := newTestClient(server.URL)
		fakeSleep(c)

		st, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:        sampleExecutions(),
			WaitForCompletion: true,
		})
		require.NoError(t, err)
		assert.Equal(t, ImportFailed, st.Status)
	})

	t.Run("ready without a result is an error", func(t *testing.T) {
		server, _ := importServer(t, []string{"queued", "ready"})
		defer server.Close()

		c, hook := newTestClient(server.URL)
		fakeSleep(c)

		_, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:        sampleExecutions(),
			WaitForCompletion: true,
		})
		require.Error(t, err)

		found := false
		for _, e := range hook.Entries {
			if e.Message == "Found importer in ready state, but never saw success/failure" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("poll budget exhausted", func(t *testing.T) {
		server, polls := importServer(t, []string{"processing"})
		defer server.Close()

		c, _ := newTestClient(server.URL)
		slept := fakeSleep(c)

		_, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:        sampleExecutions(),
			WaitForCompletion: true,
			WaitRetries:       2,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "still processing")
		assert.Equal(t, 3, *polls, "initial poll plus one per retry")
		assert.Len(t, *slept, 2)
	})

	t.Run("unrecognized status string", func(t *testing.T) {
		server, _ := importServer(t, []string{"exploded"})
		defer server.Close()

		c, _ := newTestClient(server.URL)
		fakeSleep(c)

		_, err := c.ImportExecutions(context.Background(), ImportRequest{
			Executions:        sampleExecutions(),
			WaitForCompletion: true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exploded")
	})
}

func TestGetImportStatus(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/imports", r.URL.Path)
			w.Write([]byte(`{"status": "ready"}`))
		}))
		defer server.Close()

		c, _ := newTestClient(server.URL)
		st, err := c.GetImportStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ImportReady, st.Status)
	})

	t.Run("terminal info is preserved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "succeeded", "info": {"exec_count": 2, "skipped": 0}}`))
		}))
		defer server.Close()

		c, _ := newTestClient(server.URL)
		st, err := c.GetImportStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ImportSucceeded, st.Status)
		assert.Equal(t, 2.0, st.Info["exec_count"])
	})

	t.Run("missing status field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c, _ := newTestClient(server.URL)
		_, err := c.GetImportStatus(context.Background())
		assert.Error(t, err)
	})

	t.Run("unknown status string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "sideways"}`))
		}))
		defer server.Close()

		c, _ := newTestClient(server.URL)
		_, err := c.GetImportStatus(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sideways")
	})
}

func TestImportSleepRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFailedDependency)
		w.Write([]byte(`{"error": "busy"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ImportExecutions(ctx, ImportRequest{Executions: sampleExecutions()})
	assert.ErrorIs(t, err, context.Canceled)
}
