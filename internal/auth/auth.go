package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ukydev/yard-telemetry/internal/config"
)

var (
	ErrMissingAPIKey    = errors.New("api key is required for the apikey scheme")
	ErrMissingJWTSecret = errors.New("jwt secret is required for the bearer scheme")
	ErrUnknownScheme    = errors.New("unknown auth scheme")
)

// renewMargin is how close to expiry a cached bearer token may get before
// the next request mints a fresh one.
const renewMargin = 30 * time.Second

// Service builds the Authorization header for outbound publish requests.
// It supports the store's native ApiKey scheme and self-minted bearer
// tokens for deployments fronted by an ingest gateway.
type Service struct {
	scheme    string
	apiKey    string
	jwtSecret []byte
	tokenExp  time.Duration

	token       string
	tokenExpiry time.Time
}

// NewService creates an authorization service for the configured scheme.
func NewService(cfg config.Config) (*Service, error) {
	s := &Service{
		scheme:    cfg.ESAuthScheme,
		apiKey:    cfg.ESAPIKey,
		jwtSecret: []byte(cfg.ESJWTSecret),
		tokenExp:  cfg.ESJWTTTL,
	}

	switch s.scheme {
	case config.AuthSchemeAPIKey:
		if s.apiKey == "" {
			return nil, ErrMissingAPIKey
		}
	case config.AuthSchemeBearer:
		if len(s.jwtSecret) == 0 {
			return nil, ErrMissingJWTSecret
		}
		if s.tokenExp <= 0 {
			s.tokenExp = 15 * time.Minute
		}
	case config.AuthSchemeNone:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, s.scheme)
	}

	return s, nil
}

// Header returns the header name and value to attach to the next request.
// An empty name means the scheme sends no header. Not safe for concurrent
// use; the driver loop is the only caller.
func (s *Service) Header() (string, string, error) {
	switch s.scheme {
	case config.AuthSchemeAPIKey:
		return "Authorization", "ApiKey " + s.apiKey, nil
	case config.AuthSchemeBearer:
		token, err := s.bearerToken()
		if err != nil {
			return "", "", err
		}
		return "Authorization", "Bearer " + token, nil
	default:
		return "", "", nil
	}
}

// bearerToken mints an HS256 token, reusing the cached one until it gets
// within renewMargin of expiry.
func (s *Service) bearerToken() (string, error) {
	if s.token != "" && time.Until(s.tokenExpiry) > renewMargin {
		return s.token, nil
	}

	now := time.Now()
	expiry := now.Add(s.tokenExp)
	claims := jwt.MapClaims{
		"sub": "yard-telemetry",
		"iat": now.Unix(),
		"exp": expiry.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.token = signed
	s.tokenExpiry = expiry
	return signed, nil
}
