package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxml-lang/xxmlhub/models"
)

func TestCreatePostValidation(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	longBody := strings.Repeat("x", 25)

	_, err := svc.CreatePost(0, CreatePostInput{Title: "Hello world", Body: longBody, CategoryID: category.ID})
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.CreatePost(user.ID, CreatePostInput{Title: "Hi", Body: longBody, CategoryID: category.ID})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "title", ve.Field)

	_, err = svc.CreatePost(user.ID, CreatePostInput{Title: "Hello world", Body: "short", CategoryID: category.ID})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "body", ve.Field)

	_, err = svc.CreatePost(user.ID, CreatePostInput{Title: "Hello world", Body: longBody})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "category_id", ve.Field)

	_, err = svc.CreatePost(user.ID, CreatePostInput{Title: "Hello world", Body: longBody, CategoryID: category.ID, Type: "PAGE"})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "type", ve.Field)
}

func TestCreatePostDefaultsToDiscussion(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	cache := &recordingInvalidator{}
	svc := NewPostService(db, cache)

	post, err := svc.CreatePost(user.ID, CreatePostInput{
		Title:      "My first question",
		Body:       strings.Repeat("x", 25),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.PostTypeDiscussion, post.Type)
	require.Equal(t, "my-first-question", post.Slug)
	require.Equal(t, user.ID, post.AuthorID)
	require.True(t, cache.has("/forum"))
	require.False(t, cache.has("/blog"))
}

func TestCreateBlogPostRequiresElevatedRole(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	dev := createUser(t, db, "dana", models.RoleDeveloper)
	category := createCategory(t, db, "announcements")
	cache := &recordingInvalidator{}
	svc := NewPostService(db, cache)

	_, err := svc.CreatePost(user.ID, CreatePostInput{
		Title:      "Hi there world",
		Body:       strings.Repeat("x", 25),
		CategoryID: category.ID,
		Type:       models.PostTypeBlog,
	})
	require.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	post, err := svc.CreatePost(dev.ID, CreatePostInput{
		Title:      "Release notes",
		Body:       strings.Repeat("x", 25),
		CategoryID: category.ID,
		Type:       models.PostTypeBlog,
	})
	require.NoError(t, err)
	require.Equal(t, models.PostTypeBlog, post.Type)
	require.True(t, cache.has("/blog"))
}

func TestCreatePostSlugCollisionSuffixed(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	body := strings.Repeat("x", 25)
	first, err := svc.CreatePost(user.ID, CreatePostInput{Title: "Same title", Body: body, CategoryID: category.ID})
	require.NoError(t, err)

	second, err := svc.CreatePost(user.ID, CreatePostInput{Title: "Same title", Body: body, CategoryID: category.ID})
	require.NoError(t, err)

	// A third create within the same second must still resolve.
	third, err := svc.CreatePost(user.ID, CreatePostInput{Title: "Same title", Body: body, CategoryID: category.ID})
	require.NoError(t, err)

	require.Equal(t, "same-title", first.Slug)
	require.NotEqual(t, first.Slug, second.Slug)
	require.NotEqual(t, first.Slug, third.Slug)
	require.NotEqual(t, second.Slug, third.Slug)
	require.True(t, strings.HasPrefix(second.Slug, "same-title-"))
	require.True(t, strings.HasPrefix(third.Slug, "same-title-"))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestExcerptDerivation(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	dev := createUser(t, db, "dana", models.RoleDeveloper)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	short := strings.Repeat("a", 120)
	post, err := svc.CreatePost(user.ID, CreatePostInput{Title: "Short body post", Body: short, CategoryID: category.ID})
	require.NoError(t, err)
	require.Equal(t, short, post.Excerpt)

	long := strings.Repeat("b", 450)
	post, err = svc.CreatePost(user.ID, CreatePostInput{Title: "Long body post", Body: long, CategoryID: category.ID})
	require.NoError(t, err)
	require.Equal(t, long[:200]+"...", post.Excerpt)

	// Explicit excerpt is honored for blog posts only.
	post, err = svc.CreatePost(dev.ID, CreatePostInput{
		Title:      "Release notes",
		Body:       long,
		CategoryID: category.ID,
		Type:       models.PostTypeBlog,
		Excerpt:    "hand-written summary",
	})
	require.NoError(t, err)
	require.Equal(t, "hand-written summary", post.Excerpt)
}

func TestExplicitExcerptTooLongRejected(t *testing.T) {
	db := openTestDB(t)
	dev := createUser(t, db, "dana", models.RoleDeveloper)
	category := createCategory(t, db, "announcements")
	svc := NewPostService(db, nil)

	body := strings.Repeat("x", 25)
	oversized := strings.Repeat("e", 300)

	_, err := svc.CreatePost(dev.ID, CreatePostInput{
		Title:      "Release notes",
		Body:       body,
		CategoryID: category.ID,
		Type:       models.PostTypeBlog,
		Excerpt:    oversized,
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "excerpt", ve.Field)

	post, err := svc.CreatePost(dev.ID, CreatePostInput{
		Title:      "Release notes",
		Body:       body,
		CategoryID: category.ID,
		Type:       models.PostTypeBlog,
	})
	require.NoError(t, err)

	_, err = svc.UpdateBlogPost(dev.ID, post.ID, "Release notes", body, &oversized)
	ve, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "excerpt", ve.Field)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	require.Equal(t, body, stored.Excerpt)
}

func TestUpdateForumPostAuthorization(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	mod := createUser(t, db, "mina", models.RoleModerator)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	body := strings.Repeat("x", 25)
	post, err := svc.CreatePost(author.ID, CreatePostInput{Title: "Original title", Body: body, CategoryID: category.ID})
	require.NoError(t, err)

	_, err = svc.UpdateForumPost(other.ID, post.ID, "Hijacked title", body)
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateForumPost(author.ID, post.ID, "Edited by author", body)
	require.NoError(t, err)
	require.Equal(t, "Edited by author", updated.Title)

	updated, err = svc.UpdateForumPost(mod.ID, post.ID, "Edited by moderator", body)
	require.NoError(t, err)
	require.Equal(t, "Edited by moderator", updated.Title)

	_, err = svc.UpdateForumPost(author.ID, 9999, "Whatever title", body)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBlogOperationsRejectForumPosts(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	dev := createUser(t, db, "dana", models.RoleDeveloper)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	body := strings.Repeat("x", 25)
	forum, err := svc.CreatePost(author.ID, CreatePostInput{Title: "Forum thread", Body: body, CategoryID: category.ID})
	require.NoError(t, err)
	blog, err := svc.CreatePost(dev.ID, CreatePostInput{Title: "Blog article", Body: body, CategoryID: category.ID, Type: models.PostTypeBlog})
	require.NoError(t, err)

	_, err = svc.UpdateBlogPost(dev.ID, forum.ID, "New blog title", body, nil)
	require.ErrorIs(t, err, ErrWrongPostType)
	require.ErrorIs(t, svc.DeleteBlogPost(dev.ID, forum.ID), ErrWrongPostType)

	_, err = svc.UpdateForumPost(dev.ID, blog.ID, "New forum title", body)
	require.ErrorIs(t, err, ErrWrongPostType)
	require.ErrorIs(t, svc.DeleteForumPost(dev.ID, blog.ID), ErrWrongPostType)
}

func TestUpdateBlogPostElevatedOnlyEvenForAuthor(t *testing.T) {
	db := openTestDB(t)
	dev := createUser(t, db, "dana", models.RoleDeveloper)
	category := createCategory(t, db, "announcements")
	svc := NewPostService(db, nil)

	body := strings.Repeat("x", 25)
	post, err := svc.CreatePost(dev.ID, CreatePostInput{Title: "Blog article", Body: body, CategoryID: category.ID, Type: models.PostTypeBlog})
	require.NoError(t, err)

	// Author demoted after the post exists: authorship alone never suffices
	// for blog content.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", dev.ID).Update("role", models.RoleUser).Error)

	_, err = svc.UpdateBlogPost(dev.ID, post.ID, "Updated title", body, nil)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, svc.DeleteBlogPost(dev.ID, post.ID), ErrForbidden)
}

func TestPinPostElevatedOnly(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	mod := createUser(t, db, "mina", models.RoleModerator)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	post, err := svc.CreatePost(author.ID, CreatePostInput{Title: "Pin me please", Body: strings.Repeat("x", 25), CategoryID: category.ID})
	require.NoError(t, err)

	require.ErrorIs(t, svc.PinPost(author.ID, post.ID, true), ErrForbidden)
	require.NoError(t, svc.PinPost(mod.ID, post.ID, true))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	require.True(t, stored.IsPinned)
}

func TestIncrementViewCount(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	post, err := svc.CreatePost(author.ID, CreatePostInput{Title: "View counter", Body: strings.Repeat("x", 25), CategoryID: category.ID})
	require.NoError(t, err)

	require.NoError(t, svc.IncrementViewCount(post.ID))
	require.NoError(t, svc.IncrementViewCount(post.ID))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	require.EqualValues(t, 2, stored.ViewCount)

	require.ErrorIs(t, svc.IncrementViewCount(9999), ErrNotFound)
}

func TestPostAssociationsResolve(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	category := createCategory(t, db, "general")
	posts := NewPostService(db, nil)
	comments := NewCommentService(db, nil)

	post, err := posts.CreatePost(author.ID, CreatePostInput{Title: "Thread with replies", Body: strings.Repeat("x", 25), CategoryID: category.ID})
	require.NoError(t, err)
	_, err = comments.AddComment(author.ID, post.ID, "first reply", nil)
	require.NoError(t, err)
	_, err = comments.AddComment(author.ID, post.ID, "second reply", nil)
	require.NoError(t, err)

	var loaded models.Post
	require.NoError(t, db.Preload("Author").Preload("Comments").First(&loaded, post.ID).Error)
	require.Equal(t, "alice", loaded.Author.Username)
	require.Len(t, loaded.Comments, 2)

	var user models.User
	require.NoError(t, db.Preload("Posts").Preload("Comments").First(&user, author.ID).Error)
	require.Len(t, user.Posts, 1)
	require.Len(t, user.Comments, 2)
}

func TestDeleteForumPostByAuthorAndElevated(t *testing.T) {
	db := openTestDB(t)
	author := createUser(t, db, "alice", models.RoleUser)
	other := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "arin", models.RoleAdmin)
	category := createCategory(t, db, "general")
	svc := NewPostService(db, nil)

	body := strings.Repeat("x", 25)
	p1, err := svc.CreatePost(author.ID, CreatePostInput{Title: "First thread", Body: body, CategoryID: category.ID})
	require.NoError(t, err)
	p2, err := svc.CreatePost(author.ID, CreatePostInput{Title: "Second thread", Body: body, CategoryID: category.ID})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteForumPost(other.ID, p1.ID), ErrForbidden)
	require.NoError(t, svc.DeleteForumPost(author.ID, p1.ID))
	require.NoError(t, svc.DeleteForumPost(admin.ID, p2.ID))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
