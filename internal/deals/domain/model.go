package domain

import "time"

// Deal is a business transaction linked to a canonical client.
type Deal struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Title     string    `json:"title"`
	Value     *float64  `json:"value"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StagingDeal is a draft deal not yet linked to a client. The contact fields
// are free text; a client is resolved only at promotion time. Staging deals
// have no expiry and disappear only when promoted.
type StagingDeal struct {
	ID            int64     `json:"id"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"client_email"`
	ClientPhone   string    `json:"client_phone"`
	ClientCompany string    `json:"client_company"`
	DealTitle     string    `json:"deal_title"`
	DealNotes     string    `json:"deal_notes"`
	Status        Status    `json:"status"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateStagingRequest carries staging deal creation input.
type CreateStagingRequest struct {
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientCompany string
	DealTitle     string
	DealNotes     string
}

func (r CreateStagingRequest) Validate() error {
	if r.ClientName == "" {
		return ErrClientNameRequired
	}
	if r.DealTitle == "" {
		return ErrDealTitleRequired
	}
	return nil
}

// CreateDealRequest carries the legacy direct-creation input. Either ClientID
// points at an existing client or ClientName drives resolve-or-create.
type CreateDealRequest struct {
	ClientID      *int64
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientCompany string
	DealTitle     string
	DealValue     *float64
	DealStatus    Status
	DealNotes     string
}

func (r CreateDealRequest) Validate() error {
	if r.DealTitle == "" {
		return ErrDealTitleRequired
	}
	if r.ClientID == nil && r.ClientName == "" {
		return ErrClientNameRequired
	}
	return nil
}
