package service_test

import (
	"context"
	"testing"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/config"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, errNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func buildAuthSvc(t *testing.T) (service.AuthService, *stubUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]*model.User{
		"rafael@barber.local": {
			ID:           uuid.New(),
			Username:     "rafael@barber.local",
			Name:         "Rafael",
			PasswordHash: string(hash),
			Role:         "barber",
			Active:       true,
		},
	}}
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1, JWTRefreshHours: 24}
	return service.NewAuthService(users, cfg), users
}

func TestLogin_Success(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "rafael@barber.local",
		Password: "segredo123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "barber", resp.Role)
	assert.Equal(t, "Rafael", resp.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "rafael@barber.local",
		Password: "errada",
	})
	assert.Error(t, err)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, users := buildAuthSvc(t)
	users.users["rafael@barber.local"].Active = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "rafael@barber.local",
		Password: "segredo123",
	})
	assert.Error(t, err)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "rafael@barber.local",
		Password: "segredo123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "barber", refreshed.Role)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not-a-jwt"})
	assert.Error(t, err)
}
