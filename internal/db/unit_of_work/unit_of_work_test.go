package uow

import (
	"context"
	"database/sql"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/preference"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
	dbreminder "remindbot/internal/db/reminder"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var (
	Now  = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	User = user.User{ID: 10, ChatID: 100}
)

type testSuite struct {
	suite.Suite
	db  *sql.DB
	uow *SQLiteUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.db = db.CreateTestDB(suite.T())
	suite.uow = NewSQLiteUnitOfWork(suite.db)
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.db)
}

func TestSQLiteUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func createInside(ctx context.Context, unit uow.Context) error {
	_, err := unit.Preferences().Ensure(ctx, preference.EnsureInput{
		UserID:    User.ID,
		ChatID:    User.ChatID,
		Defaults:  preference.Defaults{Timezone: preference.UTC, Language: preference.LanguageEN},
		CreatedAt: Now,
	})
	if err != nil {
		return err
	}
	_, err = unit.Reminders().Create(ctx, reminder.CreateInput{
		ChatID:    User.ChatID,
		UserID:    User.ID,
		Body:      "x",
		At:        Now.Add(time.Hour),
		Timezone:  "UTC",
		CreatedAt: Now,
	})
	return err
}

func (s *testSuite) pendingCount() int {
	s.T().Helper()
	reminders, err := dbreminder.NewSQLiteReminderRepository(s.db).ListPending(
		context.Background(),
		reminder.ListPendingInput{UserID: c.NewOptional(User.ID, true)},
	)
	s.Require().Nil(err)
	return len(reminders)
}

func (s *testSuite) TestCommit() {
	ctx := context.Background()
	unit, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer unit.Rollback(ctx)

	s.Require().Nil(createInside(ctx, unit))
	s.Require().Nil(unit.Commit(ctx))

	s.Equal(1, s.pendingCount())
}

func (s *testSuite) TestRollback() {
	ctx := context.Background()
	unit, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	s.Require().Nil(createInside(ctx, unit))
	s.Require().Nil(unit.Rollback(ctx))

	s.Equal(0, s.pendingCount())
}

func (s *testSuite) TestRollbackAfterCommitIsNoop() {
	ctx := context.Background()
	unit, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	s.Require().Nil(createInside(ctx, unit))
	s.Require().Nil(unit.Commit(ctx))
	s.Nil(unit.Rollback(ctx))
}

func (s *testSuite) TestConcurrentUnitsAreSerialized() {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			unit, err := s.uow.Begin(ctx)
			if err != nil {
				s.Fail("could not begin unit of work", err)
				return
			}
			defer unit.Rollback(ctx)
			if err := createInside(ctx, unit); err != nil {
				s.Fail("could not create reminder", err)
				return
			}
			if err := unit.Commit(ctx); err != nil {
				s.Fail("could not commit", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(10, s.pendingCount())
}
