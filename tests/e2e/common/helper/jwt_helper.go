//go:build e2e

package helper

import (
	"testing"
	"time"

	"librepress/internal/pkg/config"
	"librepress/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTTestHelper mints tokens the way the collaborator platform would.
// The engine trusts any token signed with the shared secret, so tests
// can fabricate actors freely.
type JWTTestHelper struct {
	cfg config.JWTConfig
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{cfg: cfg}
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, actorID uuid.UUID, role, clientType string) string {
	t.Helper()

	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(actorID, role, clientType)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) OperatorToken(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), "OPERATOR", "")
}

func (h *JWTTestHelper) ClientToken(t *testing.T, clientType string) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), "CLIENT", clientType)
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, actorID uuid.UUID, role string) string {
	t.Helper()

	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(actorID, role, "")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
