package quiz

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

var (
	_ wordRepo     = &wordRepoMock{}
	_ progressRepo = &progressRepoMock{}
	_ attemptRepo  = &attemptRepoMock{}
	_ txManager    = &txManagerMock{}
)

// ---------------------------------------------------------------------------
// wordRepoMock
// ---------------------------------------------------------------------------

type wordRepoMock struct {
	ListActiveFunc func(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error)

	calls struct {
		ListActive []struct {
			Ctx    context.Context
			Levels []domain.WordLevel
		}
	}
	lockListActive sync.RWMutex
}

func (mock *wordRepoMock) ListActive(ctx context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
	if mock.ListActiveFunc == nil {
		panic("wordRepoMock.ListActiveFunc: method is nil but wordRepo.ListActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Levels []domain.WordLevel
	}{Ctx: ctx, Levels: levels}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx, levels)
}

func (mock *wordRepoMock) ListActiveCalls() []struct {
	Ctx    context.Context
	Levels []domain.WordLevel
} {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// progressRepoMock
// ---------------------------------------------------------------------------

type progressRepoMock struct {
	GetByUserFunc    func(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error)
	GetByWordIDsFunc func(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error)
	UpsertFunc       func(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error

	calls struct {
		GetByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetByWordIDs []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			WordIDs []string
		}
		Upsert []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Records []domain.ProgressRecord
		}
	}
	lockGetByUser    sync.RWMutex
	lockGetByWordIDs sync.RWMutex
	lockUpsert       sync.RWMutex
}

func (mock *progressRepoMock) GetByUser(ctx context.Context, userID uuid.UUID) (domain.ProgressMap, error) {
	if mock.GetByUserFunc == nil {
		panic("progressRepoMock.GetByUserFunc: method is nil but progressRepo.GetByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetByUser.Lock()
	mock.calls.GetByUser = append(mock.calls.GetByUser, callInfo)
	mock.lockGetByUser.Unlock()
	return mock.GetByUserFunc(ctx, userID)
}

func (mock *progressRepoMock) GetByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetByUser.RLock()
	calls := mock.calls.GetByUser
	mock.lockGetByUser.RUnlock()
	return calls
}

func (mock *progressRepoMock) GetByWordIDs(ctx context.Context, userID uuid.UUID, wordIDs []string) (domain.ProgressMap, error) {
	if mock.GetByWordIDsFunc == nil {
		panic("progressRepoMock.GetByWordIDsFunc: method is nil but progressRepo.GetByWordIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		WordIDs []string
	}{Ctx: ctx, UserID: userID, WordIDs: wordIDs}
	mock.lockGetByWordIDs.Lock()
	mock.calls.GetByWordIDs = append(mock.calls.GetByWordIDs, callInfo)
	mock.lockGetByWordIDs.Unlock()
	return mock.GetByWordIDsFunc(ctx, userID, wordIDs)
}

func (mock *progressRepoMock) GetByWordIDsCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	WordIDs []string
} {
	mock.lockGetByWordIDs.RLock()
	calls := mock.calls.GetByWordIDs
	mock.lockGetByWordIDs.RUnlock()
	return calls
}

func (mock *progressRepoMock) Upsert(ctx context.Context, userID uuid.UUID, records []domain.ProgressRecord) error {
	if mock.UpsertFunc == nil {
		panic("progressRepoMock.UpsertFunc: method is nil but progressRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Records []domain.ProgressRecord
	}{Ctx: ctx, UserID: userID, Records: records}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, userID, records)
}

func (mock *progressRepoMock) UpsertCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Records []domain.ProgressRecord
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// attemptRepoMock
// ---------------------------------------------------------------------------

type attemptRepoMock struct {
	CreateFunc     func(ctx context.Context, attempt domain.QuizAttempt) error
	ListRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error)

	calls struct {
		Create []struct {
			Ctx     context.Context
			Attempt domain.QuizAttempt
		}
		ListRecent []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
		}
	}
	lockCreate     sync.RWMutex
	lockListRecent sync.RWMutex
}

func (mock *attemptRepoMock) Create(ctx context.Context, attempt domain.QuizAttempt) error {
	if mock.CreateFunc == nil {
		panic("attemptRepoMock.CreateFunc: method is nil but attemptRepo.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Attempt domain.QuizAttempt
	}{Ctx: ctx, Attempt: attempt}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, attempt)
}

func (mock *attemptRepoMock) CreateCalls() []struct {
	Ctx     context.Context
	Attempt domain.QuizAttempt
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *attemptRepoMock) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.QuizAttempt, error) {
	if mock.ListRecentFunc == nil {
		panic("attemptRepoMock.ListRecentFunc: method is nil but attemptRepo.ListRecent was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
	}{Ctx: ctx, UserID: userID, Limit: limit}
	mock.lockListRecent.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, callInfo)
	mock.lockListRecent.Unlock()
	return mock.ListRecentFunc(ctx, userID, limit)
}

func (mock *attemptRepoMock) ListRecentCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListRecent.RLock()
	calls := mock.calls.ListRecent
	mock.lockListRecent.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
