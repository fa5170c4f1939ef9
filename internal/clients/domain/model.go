package domain

import "time"

// Client is a CRM contact owned by a single user. Dedup is by exact name
// within the owner; contact fields are first-write-wins (a later deal under
// the same name never overwrites email/phone/company).
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref is the compact shape used by the client-name autocomplete dropdown.
type Ref struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// Summary is a client together with its completed-deal rollup. Clients with
// no completed deals still appear with zero counts and a nil LastDealDate.
type Summary struct {
	Client
	DealCount    int        `json:"deal_count"`
	TotalValue   float64    `json:"total_value"`
	LastDealDate *time.Time `json:"last_deal_date"`
}

// Contact carries the optional contact fields supplied at resolve time.
type Contact struct {
	Email   string
	Phone   string
	Company string
}
