package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxml-lang/xxmlhub/models"
)

func createPostForComments(t *testing.T, svc *PostService, authorID, categoryID uint) *models.Post {
	t.Helper()
	post, err := svc.CreatePost(authorID, CreatePostInput{
		Title:      "Thread for comments",
		Body:       strings.Repeat("x", 25),
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return post
}

func TestAddCommentValidation(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	post := createPostForComments(t, posts, user.ID, category.ID)

	_, err := svc.AddComment(0, post.ID, "hello", nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.AddComment(user.ID, post.ID, "   ", nil)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "body", ve.Field)

	_, err = svc.AddComment(user.ID, 9999, "hello", nil)
	require.ErrorIs(t, err, ErrNotFound)

	comment, err := svc.AddComment(user.ID, post.ID, "  hello  ", nil)
	require.NoError(t, err)
	require.Equal(t, "hello", comment.Body)
	require.Equal(t, user.ID, comment.AuthorID)
	require.Nil(t, comment.ParentID)
}

func TestAddCommentThreading(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	first := createPostForComments(t, posts, user.ID, category.ID)
	second := createPostForComments(t, posts, user.ID, category.ID)

	root, err := svc.AddComment(user.ID, first.ID, "root comment", nil)
	require.NoError(t, err)

	reply, err := svc.AddComment(other.ID, first.ID, "a reply", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	require.Equal(t, root.ID, *reply.ParentID)

	// Parent must live on the same post.
	_, err = svc.AddComment(other.ID, second.ID, "cross-post reply", &root.ID)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "parent_id", ve.Field)

	missing := uint(9999)
	_, err = svc.AddComment(other.ID, first.ID, "orphan reply", &missing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEditCommentSnapshotsRevisionOnRealChange(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	mod := createUser(t, db, "mina", models.RoleModerator)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	post := createPostForComments(t, posts, author.ID, category.ID)

	comment, err := svc.AddComment(author.ID, post.ID, "hello", nil)
	require.NoError(t, err)

	edited, err := svc.EditComment(mod.ID, comment.ID, "hello!")
	require.NoError(t, err)
	require.Equal(t, "hello!", edited.Body)

	revisions, err := svc.Revisions(comment.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 1)
	require.Equal(t, "hello", revisions[0].Body)
	require.Equal(t, mod.ID, revisions[0].EditorID)
}

func TestEditCommentNoOpWritesNoRevision(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	post := createPostForComments(t, posts, author.ID, category.ID)

	comment, err := svc.AddComment(author.ID, post.ID, "hello", nil)
	require.NoError(t, err)

	// Same body, extra surrounding whitespace: still a no-op.
	edited, err := svc.EditComment(author.ID, comment.ID, "  hello  ")
	require.NoError(t, err)
	require.Equal(t, "hello", edited.Body)

	revisions, err := svc.Revisions(comment.ID)
	require.NoError(t, err)
	require.Empty(t, revisions)
}

func TestEditCommentAuthorization(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	post := createPostForComments(t, posts, author.ID, category.ID)

	comment, err := svc.AddComment(author.ID, post.ID, "hello", nil)
	require.NoError(t, err)

	_, err = svc.EditComment(other.ID, comment.ID, "hijacked")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.EditComment(author.ID, 9999, "whatever")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.EditComment(author.ID, comment.ID, "   ")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "body", ve.Field)
}

func TestEditCommentAccumulatesHistoryNewestFirst(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	post := createPostForComments(t, posts, author.ID, category.ID)

	comment, err := svc.AddComment(author.ID, post.ID, "first", nil)
	require.NoError(t, err)
	_, err = svc.EditComment(author.ID, comment.ID, "second")
	require.NoError(t, err)
	_, err = svc.EditComment(author.ID, comment.ID, "third")
	require.NoError(t, err)

	revisions, err := svc.Revisions(comment.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	require.Equal(t, "second", revisions[0].Body)
	require.Equal(t, "first", revisions[1].Body)
}

func TestDeleteComment(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "arin", models.RoleAdmin)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	svc := NewCommentService(db, nil)
	post := createPostForComments(t, posts, author.ID, category.ID)

	c1, err := svc.AddComment(author.ID, post.ID, "mine", nil)
	require.NoError(t, err)
	c2, err := svc.AddComment(author.ID, post.ID, "also mine", nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteComment(other.ID, c1.ID), ErrForbidden)
	require.NoError(t, svc.DeleteComment(author.ID, c1.ID))
	require.NoError(t, svc.DeleteComment(admin.ID, c2.ID))
	require.ErrorIs(t, svc.DeleteComment(author.ID, c1.ID), ErrNotFound)
}

func TestCommentMutationsInvalidateRenderedPost(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	cache := &recordingInvalidator{}
	svc := NewCommentService(db, cache)
	post := createPostForComments(t, posts, author.ID, category.ID)

	comment, err := svc.AddComment(author.ID, post.ID, "hello", nil)
	require.NoError(t, err)
	require.True(t, cache.has("/forum/general/"+post.Slug))

	cache.paths = nil
	_, err = svc.EditComment(author.ID, comment.ID, "hello!")
	require.NoError(t, err)
	require.True(t, cache.has("/forum/general/"+post.Slug))
}
