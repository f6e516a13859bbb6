package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
)

func newUserTestUsecase(t *testing.T) *UserUsecase {
	t.Helper()
	return NewUserUsecase(repository.NewUserRepository(testDB(t)))
}

func TestRegisterIssuesSequentialEmployeeIDs(t *testing.T) {
	u := newUserTestUsecase(t)
	ctx := context.Background()

	first, token, err := u.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@test.io", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "EMP001", first.EmployeeID)
	assert.Equal(t, model.RoleEmployee, first.Role)
	assert.NotEmpty(t, token)

	second, _, err := u.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@test.io", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "EMP002", second.EmployeeID)
}

func TestRegisterValidation(t *testing.T) {
	u := newUserTestUsecase(t)
	ctx := context.Background()

	_, _, err := u.Register(ctx, RegisterInput{Name: "X", Email: "not-an-email", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = u.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@test.io", Password: "secret"})
	require.NoError(t, err)

	_, _, err = u.Register(ctx, RegisterInput{Name: "Alice2", Email: "alice@test.io", Password: "secret"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = u.Register(ctx, RegisterInput{Name: "Carol", Email: "carol@test.io", Password: "secret", EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, ErrEmployeeIDTaken)
}

func TestLogin(t *testing.T) {
	u := newUserTestUsecase(t)
	ctx := context.Background()

	_, _, err := u.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@test.io", Password: "secret"})
	require.NoError(t, err)

	user, token, err := u.Login(ctx, "alice@test.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEmpty(t, token)

	_, _, err = u.Login(ctx, "alice@test.io", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = u.Login(ctx, "nobody@test.io", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
