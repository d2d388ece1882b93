package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxml-lang/xxmlhub/models"
)

func TestHasElevatedRole(t *testing.T) {
	db := openTestDB(t)
	gate := NewAccessGate(db)

	cases := []struct {
		role     string
		elevated bool
	}{
		{models.RoleUser, false},
		{models.RoleDeveloper, true},
		{models.RoleModerator, true},
		{models.RoleAdmin, true},
	}
	for _, tc := range cases {
		user := createUser(t, db, "user-"+tc.role, tc.role)
		require.Equal(t, tc.elevated, gate.HasElevatedRole(user.ID), "role %s", tc.role)
	}

	require.False(t, gate.HasElevatedRole(0))
	require.False(t, gate.HasElevatedRole(9999))
}

func TestHasRole(t *testing.T) {
	db := openTestDB(t)
	gate := NewAccessGate(db)

	admin := createUser(t, db, "arin", models.RoleAdmin)
	mod := createUser(t, db, "mina", models.RoleModerator)

	require.True(t, gate.HasRole(admin.ID, models.RoleAdmin))
	require.False(t, gate.HasRole(mod.ID, models.RoleAdmin))
	require.False(t, gate.HasRole(0, models.RoleAdmin))
	require.False(t, gate.HasRole(9999, models.RoleAdmin))
}

func TestCanModify(t *testing.T) {
	db := openTestDB(t)
	gate := NewAccessGate(db)

	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	mod := createUser(t, db, "mina", models.RoleModerator)

	require.True(t, gate.CanModify(author.ID, author.ID))
	require.False(t, gate.CanModify(other.ID, author.ID))
	require.True(t, gate.CanModify(mod.ID, author.ID))
	require.False(t, gate.CanModify(0, author.ID))
}
