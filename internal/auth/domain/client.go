package domain

import "time"

// ClientRecord is a customer record managed by operators. It is a collaborator
// of the session core: accounts authenticate, client records are the data they
// manage. Deletion is soft (the row is flagged, never removed), unlike
// accounts which are hard-deleted.
type ClientRecord struct {
	ID            string
	LongName      string
	Age           int
	Gender        string
	Email         string
	Nationality   *string
	State         string
	Phone         string
	CanDrive      bool
	WearsGlasses  bool
	IsDiabetic    bool
	OtherDiseases *string
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientFilter narrows a client listing. Empty fields match everything.
type ClientFilter struct {
	Name  string
	Email string
}

// ClientPage is one page of a client listing plus the total match count.
type ClientPage struct {
	Clients    []ClientRecord `json:"clients"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
