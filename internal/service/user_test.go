package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cristiarazvan/gogogo/internal/auth"
	"github.com/cristiarazvan/gogogo/internal/domain"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

func newUserService(users *mockUserRepo) *UserService {
	jwt := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	return NewUserService(users, jwt, testLogger())
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := newUserService(users)

	var created *domain.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		}).
		Return(nil)

	user, err := svc.Register(context.Background(), "ana@example.com", "Ana", "supersecret")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleCustomer, user.Role)
	require.NotNil(t, created)
	assert.NotEqual(t, "supersecret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
}

func TestUserService_Register_ShortPasswordRejected(t *testing.T) {
	users := new(mockUserRepo)
	svc := newUserService(users)

	_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "short")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Register_DuplicateEmailPropagates(t *testing.T) {
	users := new(mockUserRepo)
	svc := newUserService(users)

	users.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.AlreadyExists("user", "email", "ana@example.com"))

	_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "supersecret")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestUserService_Login_IssuesTokenPair(t *testing.T) {
	users := new(mockUserRepo)
	svc := newUserService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&domain.User{ID: "user-1", Email: "ana@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer}, nil)

	user, tokens, err := svc.Login(context.Background(), "ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestUserService_Login_BadCredentialsIndistinguishable(t *testing.T) {
	users := new(mockUserRepo)
	svc := newUserService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&domain.User{ID: "user-1", PasswordHash: string(hash)}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, apperrors.NotFound("user", "ghost@example.com"))

	_, _, wrongPass := svc.Login(context.Background(), "ana@example.com", "nope-nope-nope")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "supersecret")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPass, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrUnauthorized)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}

func TestUserService_Refresh_RotatesPair(t *testing.T) {
	users := new(mockUserRepo)
	jwt := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := NewUserService(users, jwt, testLogger())

	refresh, err := jwt.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	users.On("GetByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", Email: "ana@example.com", Role: domain.RoleCustomer}, nil)

	tokens, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestUserService_Refresh_GarbageTokenRejected(t *testing.T) {
	svc := newUserService(new(mockUserRepo))

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUserService_Refresh_DeletedAccountRejected(t *testing.T) {
	users := new(mockUserRepo)
	jwt := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := NewUserService(users, jwt, testLogger())

	refresh, err := jwt.GenerateRefreshToken("user-gone")
	require.NoError(t, err)
	users.On("GetByID", mock.Anything, "user-gone").
		Return(nil, apperrors.NotFound("user", "user-gone"))

	_, err = svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUserService_ListUsers_AdminOnly(t *testing.T) {
	users := new(mockUserRepo)
	svc := newUserService(users)

	customer := domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}
	_, err := svc.ListUsers(context.Background(), customer)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	users.AssertNotCalled(t, "List", mock.Anything)

	users.On("List", mock.Anything).Return([]domain.User{{ID: "user-1"}}, nil)
	list, err := svc.ListUsers(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
