package tradervue

import "encoding/json"

// The server is loose about whether ids are JSON numbers or strings, so id
// fields decode through json.Number.

// Trade is a Tradervue trade record.
type Trade struct {
	ID            json.Number `json:"id"`
	Symbol        string      `json:"symbol"`
	Notes         string      `json:"notes,omitempty"`
	Shared        bool        `json:"shared,omitempty"`
	InitialRisk   *float64    `json:"initial_risk,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Side          string      `json:"side,omitempty"`
	Duration      string      `json:"duration,omitempty"`
	Quantity      float64     `json:"quantity,omitempty"`
	GrossPL       *float64    `json:"gross_pl,omitempty"`
	NetPL         *float64    `json:"net_pl,omitempty"`
	ExecCount     int         `json:"exec_count,omitempty"`
	StartDateTime string      `json:"start_datetime,omitempty"`
	EndDateTime   string      `json:"end_datetime,omitempty"`
}

// Execution is one fill belonging to a trade, as reported by the server.
type Execution struct {
	ID         json.Number `json:"id"`
	DateTime   string      `json:"datetime"`
	Quantity   float64     `json:"quantity"`
	Price      float64     `json:"price"`
	Commission float64     `json:"commission,omitempty"`
	TransFee   float64     `json:"transfee,omitempty"`
	ECNFee     float64     `json:"ecnfee,omitempty"`
	Option     string      `json:"option,omitempty"`
}

// Comment is a comment left on a shared trade.
type Comment struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username,omitempty"`
	Comment   string      `json:"comment"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// User is an organization user. User operations require organization
// manager credentials.
type User struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email,omitempty"`
	Plan     string      `json:"plan,omitempty"`
	TrialEnd string      `json:"trial_end,omitempty"`
}

// JournalEntry is a dated journal entry.
type JournalEntry struct {
	ID    json.Number `json:"id"`
	Date  string      `json:"date"`
	Notes string      `json:"notes,omitempty"`
}

// Note is an undated journal note.
type Note struct {
	ID        json.Number `json:"id"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt string      `json:"created_at,omitempty"`
}
