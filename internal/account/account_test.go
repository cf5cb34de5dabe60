package account

import (
	"context"
	"testing"

	"travel_api/internal/dbtest"
	"travel_api/internal/domain"
	"travel_api/internal/utils"
	"travel_api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAttachesRole(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()

	user, err := Create(ctx, gdb, NewUser{Name: "Ada", Email: "Ada@Example.com ", Password: "longenough", Role: domain.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	var loaded domain.User
	require.NoError(t, gdb.Preload("Roles").First(&loaded, user.ID).Error)
	assert.Equal(t, []string{domain.RoleEditor}, loaded.RoleNames())
	assert.True(t, utils.VerifyPassword(loaded.Password, "longenough"))
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	gdb := dbtest.Open(t)
	_, err := Create(context.Background(), gdb, NewUser{Name: "Ada", Email: "ada@example.com", Password: "longenough", Role: "owner"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateValidates(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()

	_, err := Create(ctx, gdb, NewUser{Name: "", Email: "nope", Password: "short", Role: domain.RoleAdmin})
	var errs validation.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	_, err = Create(ctx, gdb, NewUser{Name: "Ada", Email: "ada@example.com", Password: "longenough", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = Create(ctx, gdb, NewUser{Name: "Bob", Email: "ADA@example.com", Password: "longenough", Role: domain.RoleAdmin})
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "email")
}
