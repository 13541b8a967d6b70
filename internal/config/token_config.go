package config

import "time"

type TokenConfig interface {
	GetJWTSecret() string
	GetIssuer() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "development-secret-do-not-use")
}

func (Token) GetIssuer() string {
	return GetEnv("TOKEN_ISSUER", "go-org-service")
}

func (Token) GetAccessTokenExpiry() time.Duration {
	return 15 * time.Minute
}

func (Token) GetRefreshTokenExpiry() time.Duration {
	return 7 * 24 * time.Hour // 7 days
}
