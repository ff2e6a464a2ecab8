package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdminPasswordIsWriteOnly(t *testing.T) {
	a := &Admin{Username: "admin", Email: "admin@example.com"}
	require.NoError(t, a.SetPassword("s3cret-password"))

	require.NotEqual(t, "s3cret-password", a.PasswordHash)
	require.True(t, a.CheckPassword("s3cret-password"))
	require.False(t, a.CheckPassword("wrong"))
	require.False(t, a.CheckPassword(""))

	// The hash never leaves through serialization.
	b, err := json.Marshal(a)
	require.NoError(t, err)
	require.NotContains(t, string(b), "password")
}

func TestEmployeeSoftDeleteTransition(t *testing.T) {
	e := &Employee{Name: "Jane Doe", Status: StatusActive}
	require.True(t, e.IsActive())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.SoftDelete(now)

	require.True(t, e.IsDeleted)
	require.Equal(t, StatusInactive, e.Status)
	require.NotNil(t, e.DeletedAt)
	require.Equal(t, now, *e.DeletedAt)
	require.False(t, e.IsActive())
}

func TestEmployeeRestoreTransition(t *testing.T) {
	e := &Employee{Name: "Jane Doe", Status: StatusActive}
	e.SoftDelete(time.Now())
	e.Restore()

	require.False(t, e.IsDeleted)
	require.Nil(t, e.DeletedAt)
	require.Equal(t, StatusActive, e.Status)
	require.True(t, e.IsActive())
}
