package domain

// ProjectStatus indicates whether a project still accepts transactions in the UI.
type ProjectStatus string

const (
	ProjectActive ProjectStatus = "ACTIVE"
	ProjectClosed ProjectStatus = "CLOSED"
)

// Project belongs to exactly one company and accrues transactions.
type Project struct {
	ProjectID string        `json:"projectID"` // Primary Key (UUID)
	CompanyID string        `json:"companyID"` // FK -> Company
	Name      string        `json:"name"`
	Status    ProjectStatus `json:"status"`
	AuditFields
}
