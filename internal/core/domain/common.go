package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// PostingContext identifies the tenant, company and acting user for a posting
// or period operation. It is carried through every validation call and owned
// by the caller; this engine never persists it.
type PostingContext struct {
	TenantID  string `json:"tenantID"`
	CompanyID string `json:"companyID"`
	UserID    string `json:"userID"`
	UserRole  Role   `json:"userRole"`
}

// Role is the acting user's role as evaluated by the SoD authorizer.
type Role string

const (
	RoleViewer         Role = "VIEWER"
	RoleClerk          Role = "CLERK"
	RoleAccountant     Role = "ACCOUNTANT"
	RoleFinanceManager Role = "FINANCE_MANAGER"
	RoleController     Role = "CONTROLLER"
	RoleAdmin          Role = "ADMIN"
)
