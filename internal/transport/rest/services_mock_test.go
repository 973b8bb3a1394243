package rest

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/service/quiz"
	"github.com/heartmarshall/lugatlab/internal/service/reminder"
)

var (
	_ quizService     = &quizServiceMock{}
	_ reminderService = &reminderServiceMock{}
	_ batchRunner     = &batchRunnerMock{}
)

// ---------------------------------------------------------------------------
// quizServiceMock
// ---------------------------------------------------------------------------

type quizServiceMock struct {
	StartQuizFunc     func(ctx context.Context, input quiz.StartQuizInput) (*domain.QuizSession, error)
	SubmitAttemptFunc func(ctx context.Context, input quiz.SubmitAttemptInput) (*quiz.AttemptResult, error)
	StatsFunc         func(ctx context.Context) (domain.Stats, error)

	calls struct {
		StartQuiz     []quiz.StartQuizInput
		SubmitAttempt []quiz.SubmitAttemptInput
		Stats         int
	}
	mu sync.RWMutex
}

func (mock *quizServiceMock) StartQuiz(ctx context.Context, input quiz.StartQuizInput) (*domain.QuizSession, error) {
	if mock.StartQuizFunc == nil {
		panic("quizServiceMock.StartQuizFunc: method is nil but quizService.StartQuiz was just called")
	}
	mock.mu.Lock()
	mock.calls.StartQuiz = append(mock.calls.StartQuiz, input)
	mock.mu.Unlock()
	return mock.StartQuizFunc(ctx, input)
}

func (mock *quizServiceMock) StartQuizCalls() []quiz.StartQuizInput {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.StartQuiz
}

func (mock *quizServiceMock) SubmitAttempt(ctx context.Context, input quiz.SubmitAttemptInput) (*quiz.AttemptResult, error) {
	if mock.SubmitAttemptFunc == nil {
		panic("quizServiceMock.SubmitAttemptFunc: method is nil but quizService.SubmitAttempt was just called")
	}
	mock.mu.Lock()
	mock.calls.SubmitAttempt = append(mock.calls.SubmitAttempt, input)
	mock.mu.Unlock()
	return mock.SubmitAttemptFunc(ctx, input)
}

func (mock *quizServiceMock) SubmitAttemptCalls() []quiz.SubmitAttemptInput {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SubmitAttempt
}

func (mock *quizServiceMock) Stats(ctx context.Context) (domain.Stats, error) {
	if mock.StatsFunc == nil {
		panic("quizServiceMock.StatsFunc: method is nil but quizService.Stats was just called")
	}
	mock.mu.Lock()
	mock.calls.Stats++
	mock.mu.Unlock()
	return mock.StatsFunc(ctx)
}

// ---------------------------------------------------------------------------
// reminderServiceMock
// ---------------------------------------------------------------------------

type reminderServiceMock struct {
	GetSettingsFunc  func(ctx context.Context) (domain.ReminderSetting, error)
	SaveSettingsFunc func(ctx context.Context, input reminder.SaveSettingsInput) (domain.ReminderSetting, error)
	SubscribeFunc    func(ctx context.Context, input reminder.SubscribeInput) (*domain.PushSubscription, error)
	PublicKeyFunc    func() (string, error)

	calls struct {
		SaveSettings []reminder.SaveSettingsInput
		Subscribe    []reminder.SubscribeInput
	}
	mu sync.RWMutex
}

func (mock *reminderServiceMock) GetSettings(ctx context.Context) (domain.ReminderSetting, error) {
	if mock.GetSettingsFunc == nil {
		panic("reminderServiceMock.GetSettingsFunc: method is nil but reminderService.GetSettings was just called")
	}
	return mock.GetSettingsFunc(ctx)
}

func (mock *reminderServiceMock) SaveSettings(ctx context.Context, input reminder.SaveSettingsInput) (domain.ReminderSetting, error) {
	if mock.SaveSettingsFunc == nil {
		panic("reminderServiceMock.SaveSettingsFunc: method is nil but reminderService.SaveSettings was just called")
	}
	mock.mu.Lock()
	mock.calls.SaveSettings = append(mock.calls.SaveSettings, input)
	mock.mu.Unlock()
	return mock.SaveSettingsFunc(ctx, input)
}

func (mock *reminderServiceMock) SaveSettingsCalls() []reminder.SaveSettingsInput {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SaveSettings
}

func (mock *reminderServiceMock) Subscribe(ctx context.Context, input reminder.SubscribeInput) (*domain.PushSubscription, error) {
	if mock.SubscribeFunc == nil {
		panic("reminderServiceMock.SubscribeFunc: method is nil but reminderService.Subscribe was just called")
	}
	mock.mu.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, input)
	mock.mu.Unlock()
	return mock.SubscribeFunc(ctx, input)
}

func (mock *reminderServiceMock) SubscribeCalls() []reminder.SubscribeInput {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Subscribe
}

func (mock *reminderServiceMock) PublicKey() (string, error) {
	if mock.PublicKeyFunc == nil {
		panic("reminderServiceMock.PublicKeyFunc: method is nil but reminderService.PublicKey was just called")
	}
	return mock.PublicKeyFunc()
}

// ---------------------------------------------------------------------------
// batchRunnerMock
// ---------------------------------------------------------------------------

type batchRunnerMock struct {
	RunBatchFunc func(ctx context.Context, now time.Time) (domain.BatchReport, error)

	calls struct {
		RunBatch []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	mu sync.RWMutex
}

func (mock *batchRunnerMock) RunBatch(ctx context.Context, now time.Time) (domain.BatchReport, error) {
	if mock.RunBatchFunc == nil {
		panic("batchRunnerMock.RunBatchFunc: method is nil but batchRunner.RunBatch was just called")
	}
	mock.mu.Lock()
	mock.calls.RunBatch = append(mock.calls.RunBatch, struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now})
	mock.mu.Unlock()
	return mock.RunBatchFunc(ctx, now)
}

func (mock *batchRunnerMock) RunBatchCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.RunBatch
}
