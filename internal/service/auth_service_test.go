package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpdeskops/perf-api/internal/models"
	appErrors "github.com/helpdeskops/perf-api/pkg/errors"
)

type mockCredentialRepo struct {
	creds   *models.AgentCredentials
	findErr error
}

func (m *mockCredentialRepo) FindCredentials(ctx context.Context, id int64) (*models.AgentCredentials, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.creds, nil
}

func newAuthFixture(t *testing.T, agent models.Agent, password string) (*AuthService, *mockCredentialRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockCredentialRepo{creds: &models.AgentCredentials{Agent: agent, PasswordHash: string(hash)}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "perf-api-test",
	})
	return svc, repo
}

func TestAuthServiceLogin(t *testing.T) {
	admin := models.Agent{ID: 7, FirstName: "Alice", LastName: "Martin", Role: "admin", Function: "Technicien"}

	t.Run("success issues verifiable token", func(t *testing.T) {
		svc, _ := newAuthFixture(t, admin, "s3cret")

		resp, err := svc.Login(context.Background(), models.LoginRequest{ID: 7, Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		claims, err := svc.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.AgentID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "Alice Martin", claims.Name)
		assert.Equal(t, "7", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthFixture(t, admin, "s3cret")

		_, err := svc.Login(context.Background(), models.LoginRequest{ID: 7, Password: "nope"})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	})

	t.Run("unknown agent", func(t *testing.T) {
		svc, repo := newAuthFixture(t, admin, "s3cret")
		repo.findErr = sql.ErrNoRows

		_, err := svc.Login(context.Background(), models.LoginRequest{ID: 99, Password: "s3cret"})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	})

	t.Run("plain technician is rejected", func(t *testing.T) {
		tech := models.Agent{ID: 8, FirstName: "Bruno", LastName: "Petit", Role: "agent", Function: "Technicien"}
		svc, _ := newAuthFixture(t, tech, "s3cret")

		_, err := svc.Login(context.Background(), models.LoginRequest{ID: 8, Password: "s3cret"})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	})

	t.Run("service head is allowed", func(t *testing.T) {
		head := models.Agent{ID: 9, FirstName: "Chloé", LastName: "Durand", Role: "agent", Function: "Chef de service"}
		svc, _ := newAuthFixture(t, head, "s3cret")

		resp, err := svc.Login(context.Background(), models.LoginRequest{ID: 9, Password: "s3cret"})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.True(t, claims.CanViewReports())
	})

	t.Run("invalid payload", func(t *testing.T) {
		svc, _ := newAuthFixture(t, admin, "s3cret")

		_, err := svc.Login(context.Background(), models.LoginRequest{ID: 0, Password: ""})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})
}

func TestAuthServiceValidateToken(t *testing.T) {
	admin := models.Agent{ID: 7, FirstName: "Alice", LastName: "Martin", Role: "admin"}
	svc, _ := newAuthFixture(t, admin, "s3cret")

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		resp, err := svc.Login(context.Background(), models.LoginRequest{ID: 7, Password: "s3cret"})
		require.NoError(t, err)
		svc.now = time.Now

		_, err = svc.ValidateToken(resp.AccessToken)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), models.LoginRequest{ID: 7, Password: "s3cret"})
		require.NoError(t, err)

		other := NewAuthService(&mockCredentialRepo{}, nil, nil, AuthConfig{Secret: "other-secret"})
		_, err = other.ValidateToken(resp.AccessToken)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	})
}
