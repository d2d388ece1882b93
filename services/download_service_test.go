package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxml-lang/xxmlhub/models"
)

func TestPublishDownloadAdminOnly(t *testing.T) {
	db := openTestDB(t)
	mod := createUser(t, db, "mina", models.RoleModerator)
	admin := createUser(t, db, "arin", models.RoleAdmin)
	svc := NewDownloadService(db)

	in := DownloadInput{Version: "1.4.0", Platform: "linux", Arch: "amd64", URL: "https://dl.example.com/xxml-1.4.0.tar.gz"}

	_, err := svc.Publish(0, in)
	require.ErrorIs(t, err, ErrUnauthenticated)

	// Elevated is not enough; publishing releases is ADMIN only.
	_, err = svc.Publish(mod.ID, in)
	require.ErrorIs(t, err, ErrForbidden)

	dl, err := svc.Publish(admin.ID, in)
	require.NoError(t, err)
	require.NotEmpty(t, dl.Token)
	require.Equal(t, "1.4.0", dl.Version)
	require.EqualValues(t, 0, dl.DownloadCount)
}

func TestPublishDownloadValidation(t *testing.T) {
	db := openTestDB(t)
	admin := createUser(t, db, "arin", models.RoleAdmin)
	svc := NewDownloadService(db)

	_, err := svc.Publish(admin.ID, DownloadInput{Platform: "linux", URL: "https://example.com"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "version", ve.Field)

	_, err = svc.Publish(admin.ID, DownloadInput{Version: "1.0.0", URL: "https://example.com"})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "platform", ve.Field)

	_, err = svc.Publish(admin.ID, DownloadInput{Version: "1.0.0", Platform: "linux"})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "url", ve.Field)
}

func TestResolveBumpsDownloadCounter(t *testing.T) {
	db := openTestDB(t)
	admin := createUser(t, db, "arin", models.RoleAdmin)
	svc := NewDownloadService(db)

	dl, err := svc.Publish(admin.ID, DownloadInput{Version: "1.4.0", Platform: "darwin", Arch: "arm64", URL: "https://dl.example.com/xxml.pkg"})
	require.NoError(t, err)

	first, err := svc.Resolve(dl.Token)
	require.NoError(t, err)
	require.EqualValues(t, 1, first.DownloadCount)

	second, err := svc.Resolve(dl.Token)
	require.NoError(t, err)
	require.EqualValues(t, 2, second.DownloadCount)

	_, err = svc.Resolve("no-such-token")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUnpublishDownload(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	admin := createUser(t, db, "arin", models.RoleAdmin)
	svc := NewDownloadService(db)

	dl, err := svc.Publish(admin.ID, DownloadInput{Version: "1.4.0", Platform: "windows", Arch: "amd64", URL: "https://dl.example.com/xxml.msi"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Unpublish(user.ID, dl.ID), ErrForbidden)
	require.NoError(t, svc.Unpublish(admin.ID, dl.ID))
	require.ErrorIs(t, svc.Unpublish(admin.ID, dl.ID), ErrNotFound)

	list, err := svc.List()
	require.NoError(t, err)
	require.Empty(t, list)
}
