package repository

import (
	"errors"
	"regexp"
	"testing"

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
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestTaskRepository_DeleteForeignTaskRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `task_tags` WHERE task_id = ?")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(10, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_DeleteCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `task_tags`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(10, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_DeleteFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `task_tags` WHERE tag_id = ?")).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := repo.Delete(3, 1)
	assert.EqualError(t, err, "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_FindOwnedByIDsSkipsEmptyQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	tags, err := repo.FindOwnedByIDs(nil, 1)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "password"}).
		AddRow(5, "a@example.com", "hash")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(rows)

	user, err := repo.FindByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(9)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
