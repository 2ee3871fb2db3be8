// Package tradervue implements a client for the Tradervue REST API.
//
// Tradervue (https://www.tradervue.com) is a trade-journaling service. The
// client covers trades, trade executions and comments, journal entries,
// journal notes, organization users, and the asynchronous execution-import
// workflow. All calls are synchronous and blocking; the import workflow
// additionally sleeps between retries and status polls.
package tradervue

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Tradervue server. Organizations running a
// local server override it with WithBaseURL.
const DefaultBaseURL = "https://www.tradervue.com"

// apiPrefix is appended to the base URL for every request.
const apiPrefix = "api/v1"

// Client is a Tradervue API client. Its configuration is fixed at
// construction; a single Client may be shared by concurrent goroutines since
// it holds no mutable state.
type Client struct {
	username   string
	password   string
	userAgent  string
	targetUser string
	baseURL    string // includes the /api/v1 prefix

	verboseHTTP bool
	httpClient  *http.Client
	log         logrus.FieldLogger

	// sleep is the wait primitive used by the import retry and poll loops.
	// Tests replace it with a fake clock.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at an alternate server, e.g. an
// organization's local Tradervue installation. The /api/v1 prefix is added
// by the client and must not be part of u.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = joinURL(strings.TrimRight(u, "/"), apiPrefix)
	}
}

// WithTargetUser issues all requests on behalf of the given user ID via the
// Tradervue-UserId header. Requires organization-administrator credentials.
func WithTargetUser(userID string) Option {
	return func(c *Client) { c.targetUser = userID }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger directs the client's diagnostics to the given logger. The
// default logger writes to stderr at info level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithVerboseHTTP dumps every request and response at debug level. The
// configured logger must have debug enabled for the output to appear.
func WithVerboseHTTP() Option {
	return func(c *Client) { c.verboseHTTP = true }
}

// New creates a Tradervue client. userAgent should identify the calling
// application and include a contact address, e.g. "MyApp (you@example.com)".
func New(username, password, userAgent string, opts ...Option) *Client {
	c := &Client{
		username:  username,
		password:  password,
		userAgent: userAgent,
		baseURL:   joinURL(DefaultBaseURL, apiPrefix),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sleep: sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		c.log = log
	}

	return c
}

// endpoint builds a request URL from path segments under the API prefix.
func (c *Client) endpoint(parts ...string) string {
	return joinURL(append([]string{c.baseURL}, parts...)...)
}

func joinURL(parts ...string) string {
	return strings.Join(parts, "/")
}

// sleepContext waits for d or until ctx is cancelled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
