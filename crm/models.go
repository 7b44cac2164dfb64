package crm

// User is the authenticated account as the backend reports it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult is the payload of a successful login: the bearer token plus
// the account it belongs to.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Lead is a sales prospect.
type Lead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Status    string `json:"status"`
	Source    string `json:"source"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ProposalItem is one line of a proposal.
type ProposalItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Proposal is a commercial offer tied to a lead and a center.
type Proposal struct {
	ID        string         `json:"id"`
	LeadID    string         `json:"leadId"`
	CenterID  string         `json:"centerId"`
	Title     string         `json:"title"`
	Status    string         `json:"status"`
	Items     []ProposalItem `json:"items"`
	Total     float64        `json:"total"`
	ValidTo   string         `json:"validTo,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
	UpdatedAt string         `json:"updatedAt,omitempty"`
}

// Center is a coworking location.
type Center struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}
