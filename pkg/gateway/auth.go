package gateway

import (
	"Ginraidee/domain"
	"context"
	"net/http"

	"go.uber.org/zap"
)

type (
	AuthGateway interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Refresh(ctx context.Context) (domain.AuthResponse, error)
	}

	authGateway struct {
		*transport
	}
)

func NewAuthGateway(session Session, logger *zap.Logger) AuthGateway {
	return &authGateway{newTransport(session, logger)}
}

func (g *authGateway) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	var res domain.AuthResponse
	err := g.do(ctx, "register", http.MethodPost, "/api/v1/auth/register", req, &res)
	return res, err
}

func (g *authGateway) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	var res domain.AuthResponse
	err := g.do(ctx, "login", http.MethodPost, "/api/v1/auth/login", req, &res)
	return res, err
}

// Refresh trades the session token for a fresh one.
func (g *authGateway) Refresh(ctx context.Context) (domain.AuthResponse, error) {
	var res domain.AuthResponse
	err := g.do(ctx, "refresh", http.MethodPost, "/api/v1/auth/refresh", nil, &res)
	return res, err
}

// WithToken returns a copy of s that authenticates with token.
func (s Session) WithToken(token string) Session {
	s.Token = token
	return s
}
