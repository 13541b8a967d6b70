package token

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

// Token type discriminators carried in the "typ" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the decoded, verified payload of a token issued by the Manager.
type Claims struct {
	Subject   string // admin principal ID
	OrgID     string
	OrgName   string // access tokens only
	Role      string // access tokens only
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string // jti
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.TokenType == TypeRefresh
}

// Manager issues and verifies access and refresh tokens. Tokens are
// stateless: validity is purely a function of signature and encoded expiry.
type Manager struct {
	signer        Signer
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	nowFunc       func() time.Time
}

type ManagerOption func(*Manager)

func WithTokenExpiry(accessExpiry, refreshExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessExpiry = accessExpiry
		m.refreshExpiry = refreshExpiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithIssuer(issuer string) ManagerOption {
	return func(m *Manager) {
		m.issuer = issuer
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer: signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessExpiry == 0 {
		m.accessExpiry = 15 * time.Minute
	}
	if m.refreshExpiry == 0 {
		m.refreshExpiry = 7 * 24 * time.Hour
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

// AccessExpiry returns the validity window of access tokens.
func (m *Manager) AccessExpiry() time.Duration {
	return m.accessExpiry
}

// IssueAccess creates a signed access token carrying the principal's
// organization linkage and role.
func (m *Manager) IssueAccess(principalID, orgID, orgName, role string) (string, error) {
	now := m.nowFunc()
	claims := jwt.MapClaims{
		"iss":      m.issuer,
		"sub":      principalID,
		"org_id":   orgID,
		"org_name": orgName,
		"role":     role,
		"typ":      TypeAccess,
		"iat":      now.Unix(),
		"exp":      now.Add(m.accessExpiry).Unix(),
		"jti":      uuid.New().String(),
	}

	signedToken, err := m.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "Manager.IssueAccess Sign")
	}
	return signedToken, nil
}

// IssueRefresh creates a signed refresh token. It carries no role or
// organization name; only the linkage needed to re-authenticate.
func (m *Manager) IssueRefresh(principalID, orgID string) (string, error) {
	now := m.nowFunc()
	claims := jwt.MapClaims{
		"iss":    m.issuer,
		"sub":    principalID,
		"org_id": orgID,
		"typ":    TypeRefresh,
		"iat":    now.Unix(),
		"exp":    now.Add(m.refreshExpiry).Unix(),
		"jti":    uuid.New().String(),
	}

	signedToken, err := m.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "Manager.IssueRefresh Sign")
	}
	return signedToken, nil
}

// Verify checks signature and expiry and returns the decoded claims. Bad
// signature, malformed payload and expiry all surface as ErrInvalidToken;
// callers must not distinguish these in client-facing responses.
func (m *Manager) Verify(rawToken string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithTimeFunc(m.nowFunc))
	parsed, err := parser.Parse(rawToken, m.signer.GetVerificationKey)
	if err != nil || !parsed.Valid {
		return nil, serviceerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, serviceerrors.ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	orgID, _ := mapClaims["org_id"].(string)
	orgName, _ := mapClaims["org_name"].(string)
	role, _ := mapClaims["role"].(string)
	typ, _ := mapClaims["typ"].(string)
	jti, _ := mapClaims["jti"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)

	if sub == "" || typ == "" {
		return nil, serviceerrors.ErrInvalidToken
	}

	return &Claims{
		Subject:   sub,
		OrgID:     orgID,
		OrgName:   orgName,
		Role:      role,
		TokenType: typ,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
		ID:        jti,
	}, nil
}

// Fingerprint computes the one-way storage digest of a token. The same token
// always yields the same digest; the digest is never reversed.
func Fingerprint(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
