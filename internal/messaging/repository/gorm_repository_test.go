package repository

import (
	"testing"
	"time"

	"recruitbridge-backend/internal/messaging/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestMessageCreate_DuplicateKeyTranslated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormMessageRepository(db)

	// Postgres unique violation on (thread_id, external_id) must surface as
	// gorm.ErrDuplicatedKey so the inbound processor can skip redeliveries.
	mock.ExpectExec(`INSERT INTO "messages"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_message_external"})

	err := repo.Create(&domain.Message{
		ThreadID:   "thread-1",
		ExternalID: "m1",
		Direction:  domain.DirectionIn,
		ReceivedAt: time.Now(),
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageCreate_AssignsID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormMessageRepository(db)

	mock.ExpectExec(`INSERT INTO "messages"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	message := &domain.Message{ThreadID: "thread-1", ExternalID: "m1", Direction: domain.DirectionIn}
	require.NoError(t, repo.Create(message))
	assert.NotEmpty(t, message.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThreadCreate_DuplicateKeyTranslated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormThreadRepository(db)

	mock.ExpectExec(`INSERT INTO "threads"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_thread_participants"})

	err := repo.Create(&domain.Thread{
		UserID:         "user-1",
		Participants:   "coach.sir@demo.com,you@recruitbridge.net",
		ParticipantKey: "coach.sir@demo.com,you@recruitbridge.net",
		LastMessageAt:  time.Now(),
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThreadTouch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormThreadRepository(db)

	// The unread bump happens in SQL so concurrent touches don't lose
	// increments to a read-modify-write.
	mock.ExpectExec(`UPDATE "threads" SET .*unread_count.*WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Touch("thread-1", time.Now(), true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThreadMarkRead(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormThreadRepository(db)

	mock.ExpectExec(`UPDATE "threads" SET "unread_count"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkRead("thread-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThreadFindByKey_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormThreadRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "threads" WHERE user_id = \$1 AND participant_key = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	thread, err := repo.FindByKey("user-1", "a@b.c,d@e.f")
	require.NoError(t, err)
	assert.Nil(t, thread)
	assert.NoError(t, mock.ExpectationsWereMet())
}
