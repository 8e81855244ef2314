package organizations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/projectshub/go-hub-client/apiclient"
)

// Authorizer issues bearer-authenticated GETs, refreshing the token behind
// the scenes when needed. The auth.Coordinator satisfies it.
type Authorizer interface {
	GetAuthorized(ctx context.Context, path string) (json.RawMessage, error)
}

// CreateRequest creates a new organization under a plan.
type CreateRequest struct {
	Name            string `json:"name" validate:"required"`
	PlanID          string `json:"planId" validate:"required,uuid"`
	CreatedByUserID string `json:"createdByUserId" validate:"required"`
}

// InviteRequest invites a member into an organization.
type InviteRequest struct {
	InvitedByUserID string   `json:"invitedByUserId" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Role            RoleType `json:"role" validate:"required,oneof=MENAGER EMPLOYEE"`
}

type acceptRequest struct {
	Token string `json:"token"`
}

// AcceptResult carries the optional confirmation message of an accepted
// invitation.
type AcceptResult struct {
	Message string `json:"message,omitempty"`
}

// Service composes the API client and the auth coordinator into the
// organization operations. Requests are validated before any network call.
type Service struct {
	api      *apiclient.Client
	auth     Authorizer
	validate *validator.Validate
}

// NewService initializes the organization service.
func NewService(api *apiclient.Client, auth Authorizer) (*Service, error) {
	if api == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	if auth == nil {
		return nil, errors.New("[NewService] authorizer is required")
	}
	return &Service{
		api:      api,
		auth:     auth,
		validate: validator.New(),
	}, nil
}

// Create registers a new organization and returns the created record.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Organization, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Create] invalid request")
	}

	payload, err := s.api.PostJSON(ctx, "/api/organizations", req, "")
	if err != nil {
		return nil, err
	}

	org := &Organization{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, org); err != nil {
			return nil, errors.Wrap(err, "[Create] decode response")
		}
	}
	return org, nil
}

// ListForUser returns the organizations the given user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Organization, error) {
	if userID == "" {
		return nil, errors.New("[ListForUser] user id is required")
	}

	payload, err := s.auth.GetAuthorized(ctx, "/api/organizations/user/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}

	return decodeList[Organization](payload, "[ListForUser]")
}

// Members returns the members of an organization. The requesting user's id
// travels as a query parameter for the backend's access check.
func (s *Service) Members(ctx context.Context, organizationID, requestUserID string) ([]Member, error) {
	if organizationID == "" {
		return nil, errors.New("[Members] organization id is required")
	}
	if requestUserID == "" {
		return nil, errors.New("[Members] request user id is required")
	}

	query := url.Values{"requestUserId": {requestUserID}}
	path := fmt.Sprintf("/api/organizations/%s/members?%s", url.PathEscape(organizationID), query.Encode())

	payload, err := s.auth.GetAuthorized(ctx, path)
	if err != nil {
		return nil, err
	}

	return decodeList[Member](payload, "[Members]")
}

// InviteMember sends a member invitation and returns the generated
// invitation link alongside the invited email and role.
func (s *Service) InviteMember(ctx context.Context, organizationID string, req InviteRequest) (*Invitation, error) {
	if organizationID == "" {
		return nil, errors.New("[InviteMember] organization id is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[InviteMember] invalid request")
	}

	path := fmt.Sprintf("/api/organizations/%s/members/invite", url.PathEscape(organizationID))
	payload, err := s.api.PostJSON(ctx, path, req, "")
	if err != nil {
		return nil, err
	}

	invitation := &Invitation{}
	if err := json.Unmarshal(payload, invitation); err != nil {
		return nil, errors.Wrap(err, "[InviteMember] decode response")
	}
	return invitation, nil
}

// PreviewInvitation resolves an invitation token into the organization it
// grants membership of. No authentication is required.
func (s *Service) PreviewInvitation(ctx context.Context, invitationToken string) (*InvitationPreview, error) {
	if invitationToken == "" {
		return nil, errors.New("[PreviewInvitation] invitation token is required")
	}

	query := url.Values{"token": {invitationToken}}
	payload, err := s.api.GetJSON(ctx, "/api/organizations/member-invitations/preview?"+query.Encode(), "")
	if err != nil {
		return nil, err
	}

	preview := &InvitationPreview{}
	if err := json.Unmarshal(payload, preview); err != nil {
		return nil, errors.Wrap(err, "[PreviewInvitation] decode response")
	}
	return preview, nil
}

// AcceptInvitation redeems an invitation token. No authentication is
// required; the backend resolves the invited account from the token.
func (s *Service) AcceptInvitation(ctx context.Context, invitationToken string) (*AcceptResult, error) {
	if invitationToken == "" {
		return nil, errors.New("[AcceptInvitation] invitation token is required")
	}

	payload, err := s.api.PostJSON(ctx, "/api/organizations/member-invitations/accept", acceptRequest{Token: invitationToken}, "")
	if err != nil {
		return nil, err
	}

	result := &AcceptResult{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, result); err != nil {
			return nil, errors.Wrap(err, "[AcceptInvitation] decode response")
		}
	}
	return result, nil
}

// decodeList tolerates a null or absent payload, mirroring how the API
// returns an empty collection.
func decodeList[T any](payload json.RawMessage, wrap string) ([]T, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, errors.Wrap(err, wrap+" decode response")
	}
	return items, nil
}
