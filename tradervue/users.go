package tradervue

import (
	"context"
	"time"
)

// User operations are only available to organization managers.

// NewUser describes an organization user to create. Username, Email, Plan
// and Password are all required by the server; Plan is one of "Free",
// "Silver" or "Gold".
type NewUser struct {
	Username string
	Email    string
	Plan     string
	Password string
	TrialEnd *time.Time // optional end of the new user's trial period
}

// UserUpdate carries the fields to modify on an existing user. Nil fields
// are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Plan     *string
}

// GetUsers lists the users in the organization.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	return fetchObject[[]User](ctx, c, kindUsers, "", nil, "users", nil)
}

// GetUser fetches detailed information about one user.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	u, err := fetchObject[User](ctx, c, kindUsers, userID, nil, "users", nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates a new organization user. It returns the new user ID,
// or the Location header instead when returnURL is set.
func (c *Client) CreateUser(ctx context.Context, u NewUser, returnURL bool) (string, error) {
	data := map[string]any{
		"username": u.Username,
		"email":    u.Email,
		"plan":     u.Plan,
		"password": u.Password,
	}
	if u.TrialEnd != nil {
		data["trial_end"] = u.TrialEnd.Format(createDateFormat)
	}

	return createObject(ctx, c, kindUsers, u.Username, data, returnURL)
}

// UpdateUser modifies the set fields of a user.
func (c *Client) UpdateUser(ctx context.Context, userID string, u UserUpdate) error {
	data := map[string]any{}
	if u.Username != nil {
		data["username"] = *u.Username
	}
	if u.Email != nil {
		data["email"] = *u.Email
	}
	if u.Plan != nil {
		data["plan"] = *u.Plan
	}

	return updateObject(ctx, c, kindUsers, userID, data)
}
