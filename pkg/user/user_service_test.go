package user

import (
	"Ginraidee/domain"
	"Ginraidee/entities"
	"Ginraidee/pkg/jwt"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (UserService, jwt.JWTService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	jwtService := jwt.NewJWTService("test-secret")
	return NewUserService(NewUserRepository(db), jwtService, nil), jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtService := setupService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: " Cook@Example.com ", Password: "hunter22", Name: "Cook"})
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", reg.User.Email)
	assert.Equal(t, "th", reg.User.Language)

	id, role, err := jwtService.GetUserIDByToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id)
	assert.Equal(t, domain.RoleUser, role)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{Email: "A@B.co", Password: "secret2", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "secret1", Name: "A", Language: "en"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@b.co", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "x@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	res, err := svc.RefreshToken(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.RefreshToken(ctx, "550e8400-e29b-41d4-a716-446655440999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureGuestIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	guest := "550e8400-e29b-41d4-a716-446655440000"

	require.NoError(t, svc.EnsureGuest(ctx, guest))
	require.NoError(t, svc.EnsureGuest(ctx, guest))
	assert.ErrorIs(t, svc.EnsureGuest(ctx, "guest"), domain.ErrParseUUID)
}
