package author

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/entities"
	"github.com/jgelli/recipes-go/internal/utils"
)

type mockAuthorRepo struct {
	users map[string]*entities.User // keyed by username
}

func newMockAuthorRepo() *mockAuthorRepo {
	return &mockAuthorRepo{users: make(map[string]*entities.User)}
}

func (m *mockAuthorRepo) CreateUser(_ context.Context, user *entities.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockAuthorRepo) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockAuthorRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo AuthorRepository) AuthorService {
	utils.InitValidator()
	return NewAuthorService(repo, utils.Validate)
}

func validRegister() domain.RegisterRequest {
	return domain.RegisterRequest{
		FirstName: "John",
		LastName:  "Doe",
		Username:  "johndoe",
		Email:     "john@example.com",
		Password:  "@A123abc123",
		Password2: "@A123abc123",
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := newMockAuthorRepo()
	service := newTestService(repo)

	res, err := service.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, "johndoe", res.Username)

	stored := repo.users["johndoe"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "@A123abc123", stored.Password, "password must be stored hashed")
}

func TestRegisterWeakPassword(t *testing.T) {
	service := newTestService(newMockAuthorRepo())

	req := validRegister()
	req.Password = "abc123" // no uppercase, too short
	req.Password2 = "abc123"

	_, err := service.Register(context.Background(), req)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["password"], domain.MsgPasswordWeak)
}

func TestRegisterPasswordMismatchReportsBothFields(t *testing.T) {
	service := newTestService(newMockAuthorRepo())

	req := validRegister()
	req.Password2 = "@A123abc124"

	_, err := service.Register(context.Background(), req)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["password"], domain.MsgPasswordMismatch)
	assert.Contains(t, verr.Fields["password2"], domain.MsgPasswordMismatch)
}

func TestRegisterMatchingPasswordsHaveNoMismatchError(t *testing.T) {
	service := newTestService(newMockAuthorRepo())

	req := validRegister()
	req.Username = "abc" // force a different failure so validation runs

	_, err := service.Register(context.Background(), req)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.NotContains(t, verr.Fields["password"], domain.MsgPasswordMismatch)
	assert.NotContains(t, verr.Fields["password2"], domain.MsgPasswordMismatch)
	assert.Contains(t, verr.Fields["username"], domain.MsgUsernameTooShort)
}

func TestRegisterAggregatesAllFieldErrors(t *testing.T) {
	service := newTestService(newMockAuthorRepo())

	_, err := service.Register(context.Background(), domain.RegisterRequest{})
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	for _, field := range []string{"first_name", "last_name", "username", "email", "password", "password2"} {
		assert.NotEmpty(t, verr.Fields[field], "expected an error for %s", field)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockAuthorRepo()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), validRegister())
	require.NoError(t, err)

	req := validRegister()
	req.Username = "janedoe"

	_, err = service.Register(context.Background(), req)
	require.Error(t, err)

	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["email"], domain.MsgEmailInUse)
}

func TestLogin(t *testing.T) {
	repo := newMockAuthorRepo()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), validRegister())
	require.NoError(t, err)

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Username: "johndoe",
		Password: "@A123abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "johndoe", res.Username)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Username: "johndoe",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Username: "nobody",
		Password: "@A123abc123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
