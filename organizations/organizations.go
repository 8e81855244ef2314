// Package organizations wraps the Hub API's organization and member
// invitation endpoints with typed requests and responses.
package organizations

import "github.com/google/uuid"

// RoleType is the role a member holds inside an organization.
type RoleType string

// The backend's member roles, spelling included.
const (
	RoleManager  RoleType = "MENAGER"
	RoleEmployee RoleType = "EMPLOYEE"
)

// Organization is one organization a user belongs to.
type Organization struct {
	OrganizationID  string `json:"organizationId"`
	Name            string `json:"name"`
	PlanID          string `json:"planId,omitempty"`
	CreatedByUserID string `json:"createdByUserId,omitempty"`
}

// Member is one member of an organization.
type Member struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Role      RoleType `json:"role"`
}

// Invitation is the response to a member invite: who was invited, as what,
// and the link they accept through.
type Invitation struct {
	Email          string   `json:"email"`
	Role           RoleType `json:"role"`
	InvitationLink string   `json:"invitationLink"`
}

// InvitationPreview describes a pending invitation before it is accepted.
type InvitationPreview struct {
	OrganizationName string   `json:"organizationName"`
	Email            string   `json:"email,omitempty"`
	Role             RoleType `json:"role,omitempty"`
}

// Plan is one subscription plan an organization can be created under.
type Plan struct {
	ID    uuid.UUID
	Code  string
	Label string
}

var planOptions = []Plan{
	{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Code: "FREE", Label: "Free"},
	{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Code: "PREMIUM", Label: "Premium"},
	{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Code: "PRO", Label: "Pro"},
}

// PlanOptions returns the fixed plan catalog.
func PlanOptions() []Plan {
	plans := make([]Plan, len(planOptions))
	copy(plans, planOptions)
	return plans
}

// PlanByCode looks a plan up by its code, nil when unknown.
func PlanByCode(code string) *Plan {
	for _, plan := range planOptions {
		if plan.Code == code {
			p := plan
			return &p
		}
	}
	return nil
}
