package repository

import (
	"Portfolio/internal/model"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var postColumns = []string{"id", "created_at", "title", "image_url", "author_id", "is_published", "content", "subtitle", "sub_images"}

func TestContentRepo_ListPublished(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts` WHERE is_published = ? ORDER BY created_at DESC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow("b", newer, "B", nil, "u1", true, "body b", nil, `["https://cdn/blog-images/x.png"]`).
			AddRow("a", older, "A", nil, "u1", true, "body a", "sub", nil))

	items, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Title)
	assert.Equal(t, []string{"https://cdn/blog-images/x.png"}, []string(items[0].SubImages))
	assert.Equal(t, "sub", *items[1].Subtitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepo_ListPublishedEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `projects` WHERE is_published = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestContentRepo_ListByAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts` WHERE author_id = ? ORDER BY created_at DESC")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow("a", time.Now(), "A", nil, "u1", false, "body", nil, nil))

	items, err := repo.ListByAuthor(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsPublished)
}

func TestContentRepo_GetPublishedByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	query := regexp.QuoteMeta("SELECT * FROM `posts` WHERE id = ? AND is_published = ?")
	mock.ExpectQuery(query).
		WithArgs("draft-id", true, 1).
		WillReturnRows(sqlmock.NewRows(postColumns))
	mock.ExpectQuery(query).
		WithArgs("live-id", true, 1).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow("live-id", time.Now(), "Live", nil, "u1", true, "body", nil, nil))

	missing, err := repo.GetPublishedByID(context.Background(), "draft-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	found, err := repo.GetPublishedByID(context.Background(), "live-id")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Live", found.Title)
}

func TestContentRepo_InsertAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec("INSERT INTO `posts`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &model.Post{}
	post.Fill(model.Fields{Title: "Hello", Body: "World", AuthorID: "u1"})
	post.IsPublished = true

	require.NoError(t, repo.Insert(context.Background(), post))
	assert.Len(t, post.ID, 36)
	assert.False(t, post.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepo_InsertWrapsDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectExec("INSERT INTO `projects`").WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), &model.Project{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert projects")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestContentRepo_DeleteByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `posts` WHERE id = ?")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByID(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepo_ListAssetURLs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts`")).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow("a", time.Now(), "A", "https://cdn/blog-images/a.png", "u1", true, "body", nil, `["https://cdn/blog-images/b.png"]`).
			AddRow("b", time.Now(), "B", nil, "u1", true, "body", nil, nil))

	urls, err := repo.ListAssetURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/blog-images/a.png", "https://cdn/blog-images/b.png"}, urls)
}
