package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-org-service/admins"
	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
	"github.com/jrsteele09/go-org-service/organizations"
	"github.com/jrsteele09/go-org-service/token"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int    `json:"expires_in"`
	PrincipalID      string `json:"principal_id"`
	OrganizationID   string `json:"organization_id,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	Role             string `json:"role"`
}

// RefreshResult carries the re-issued access token. The refresh token itself
// is not rotated on use; only a subsequent login replaces it.
type RefreshResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// SessionManager is the capability interface the HTTP layer consumes for
// authentication.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, principalID, refreshToken string) (*RefreshResult, error)
}

// Repos holds the registry repositories the SessionService depends on.
type Repos struct {
	Admins        admins.Repo
	Organizations organizations.Repo
}

// SessionService orchestrates login and refresh using the token manager and
// persisted admin records.
type SessionService struct {
	repos   Repos
	tokens  *token.Manager
	nowTime func() time.Time
}

var _ SessionManager = (*SessionService)(nil)

type SessionOption func(*SessionService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionOption {
	return func(ss *SessionService) {
		ss.nowTime = nowFunc
	}
}

// NewSessionService initializes a SessionService with required dependencies.
func NewSessionService(repos Repos, tokens *token.Manager, options ...SessionOption) (*SessionService, error) {
	if repos.Admins == nil {
		return nil, errors.New("[NewSessionService] Admins repo is required")
	}
	if repos.Organizations == nil {
		return nil, errors.New("[NewSessionService] Organizations repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewSessionService] token manager is required")
	}

	ss := &SessionService{
		repos:   repos,
		tokens:  tokens,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(ss)
	}

	return ss, nil
}

// Login authenticates an admin by email and password and issues a fresh
// access/refresh token pair. The stored refresh fingerprint is overwritten,
// which invalidates any previously issued refresh token. Unknown email and
// wrong password produce the identical error so callers cannot probe which
// emails exist.
func (ss *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, serviceerrors.Validationf("email and password are required")
	}

	admin, err := ss.repos.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, serviceerrors.ErrInvalidCredentials
	}

	if !admins.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, serviceerrors.ErrInvalidCredentials
	}

	var orgName string
	if admin.OrganizationID != "" {
		org, err := ss.repos.Organizations.GetByID(ctx, admin.OrganizationID)
		if err != nil {
			return nil, serviceerrors.Wrapf(err, "[SessionService.Login] Organizations.GetByID")
		}
		orgName = org.Name
	}

	accessToken, err := ss.tokens.IssueAccess(admin.ID, admin.OrganizationID, orgName, string(admin.Role))
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[SessionService.Login] IssueAccess")
	}

	refreshToken, err := ss.tokens.IssueRefresh(admin.ID, admin.OrganizationID)
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[SessionService.Login] IssueRefresh")
	}

	if err := ss.repos.Admins.SetRefreshDigest(ctx, admin.ID, token.Fingerprint(refreshToken), ss.nowTime()); err != nil {
		return nil, serviceerrors.Wrapf(err, "[SessionService.Login] SetRefreshDigest")
	}

	return &Session{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "bearer",
		ExpiresIn:        int(ss.tokens.AccessExpiry().Seconds()),
		PrincipalID:      admin.ID,
		OrganizationID:   admin.OrganizationID,
		OrganizationName: orgName,
		Role:             string(admin.Role),
	}, nil
}

// Refresh verifies a presented refresh token against the principal's stored
// fingerprint and issues a new access token. Any fingerprint difference,
// whether from tampering or a prior rotation, fails with ErrRefreshMismatch.
func (ss *SessionService) Refresh(ctx context.Context, principalID, refreshToken string) (*RefreshResult, error) {
	claims, err := ss.tokens.Verify(refreshToken)
	if err != nil || !claims.IsRefresh() {
		return nil, serviceerrors.ErrInvalidRefresh
	}

	admin, err := ss.repos.Admins.GetByID(ctx, principalID)
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[SessionService.Refresh] Admins.GetByID")
	}

	if admin.RefreshDigest == "" || admin.RefreshDigest != token.Fingerprint(refreshToken) {
		return nil, serviceerrors.ErrRefreshMismatch
	}

	var orgName string
	if admin.OrganizationID != "" {
		org, err := ss.repos.Organizations.GetByID(ctx, admin.OrganizationID)
		if err != nil {
			return nil, serviceerrors.Wrapf(err, "[SessionService.Refresh] Organizations.GetByID")
		}
		orgName = org.Name
	}

	accessToken, err := ss.tokens.IssueAccess(admin.ID, admin.OrganizationID, orgName, string(admin.Role))
	if err != nil {
		return nil, serviceerrors.Wrapf(err, "[SessionService.Refresh] IssueAccess")
	}

	return &RefreshResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(ss.tokens.AccessExpiry().Seconds()),
	}, nil
}
