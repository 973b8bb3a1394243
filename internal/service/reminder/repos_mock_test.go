package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/lugatlab/internal/domain"
)

var (
	_ settingsRepo     = &settingsRepoMock{}
	_ subscriptionRepo = &subscriptionRepoMock{}
	_ pushSender       = &pushSenderMock{}
	_ txManager        = &txManagerMock{}
)

// ---------------------------------------------------------------------------
// settingsRepoMock
// ---------------------------------------------------------------------------

type settingsRepoMock struct {
	GetFunc                func(ctx context.Context, userID uuid.UUID) (*domain.ReminderSetting, error)
	UpsertFunc             func(ctx context.Context, setting domain.ReminderSetting) (*domain.ReminderSetting, error)
	EnableWithTimezoneFunc func(ctx context.Context, userID uuid.UUID, timezone string) error
	ListEnabledFunc        func(ctx context.Context) ([]domain.ReminderSetting, error)
	MarkSentFunc           func(ctx context.Context, userID uuid.UUID, at time.Time) error

	calls struct {
		Get []struct {
			UserID uuid.UUID
		}
		Upsert []struct {
			Setting domain.ReminderSetting
		}
		EnableWithTimezone []struct {
			UserID   uuid.UUID
			Timezone string
		}
		ListEnabled []struct{}
		MarkSent    []struct {
			UserID uuid.UUID
			At     time.Time
		}
	}
	lockGet                sync.RWMutex
	lockUpsert             sync.RWMutex
	lockEnableWithTimezone sync.RWMutex
	lockListEnabled        sync.RWMutex
	lockMarkSent           sync.RWMutex
}

func (mock *settingsRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderSetting, error) {
	if mock.GetFunc == nil {
		panic("settingsRepoMock.GetFunc: method is nil but settingsRepo.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct{ UserID uuid.UUID }{UserID: userID})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *settingsRepoMock) GetCalls() []struct {
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *settingsRepoMock) Upsert(ctx context.Context, setting domain.ReminderSetting) (*domain.ReminderSetting, error) {
	if mock.UpsertFunc == nil {
		panic("settingsRepoMock.UpsertFunc: method is nil but settingsRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ Setting domain.ReminderSetting }{Setting: setting})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, setting)
}

func (mock *settingsRepoMock) UpsertCalls() []struct {
	Setting domain.ReminderSetting
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *settingsRepoMock) EnableWithTimezone(ctx context.Context, userID uuid.UUID, timezone string) error {
	if mock.EnableWithTimezoneFunc == nil {
		panic("settingsRepoMock.EnableWithTimezoneFunc: method is nil but settingsRepo.EnableWithTimezone was just called")
	}
	callInfo := struct {
		UserID   uuid.UUID
		Timezone string
	}{UserID: userID, Timezone: timezone}
	mock.lockEnableWithTimezone.Lock()
	mock.calls.EnableWithTimezone = append(mock.calls.EnableWithTimezone, callInfo)
	mock.lockEnableWithTimezone.Unlock()
	return mock.EnableWithTimezoneFunc(ctx, userID, timezone)
}

func (mock *settingsRepoMock) EnableWithTimezoneCalls() []struct {
	UserID   uuid.UUID
	Timezone string
} {
	mock.lockEnableWithTimezone.RLock()
	calls := mock.calls.EnableWithTimezone
	mock.lockEnableWithTimezone.RUnlock()
	return calls
}

func (mock *settingsRepoMock) ListEnabled(ctx context.Context) ([]domain.ReminderSetting, error) {
	if mock.ListEnabledFunc == nil {
		panic("settingsRepoMock.ListEnabledFunc: method is nil but settingsRepo.ListEnabled was just called")
	}
	mock.lockListEnabled.Lock()
	mock.calls.ListEnabled = append(mock.calls.ListEnabled, struct{}{})
	mock.lockListEnabled.Unlock()
	return mock.ListEnabledFunc(ctx)
}

func (mock *settingsRepoMock) ListEnabledCalls() []struct{} {
	mock.lockListEnabled.RLock()
	calls := mock.calls.ListEnabled
	mock.lockListEnabled.RUnlock()
	return calls
}

func (mock *settingsRepoMock) MarkSent(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if mock.MarkSentFunc == nil {
		panic("settingsRepoMock.MarkSentFunc: method is nil but settingsRepo.MarkSent was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		At     time.Time
	}{UserID: userID, At: at}
	mock.lockMarkSent.Lock()
	mock.calls.MarkSent = append(mock.calls.MarkSent, callInfo)
	mock.lockMarkSent.Unlock()
	return mock.MarkSentFunc(ctx, userID, at)
}

func (mock *settingsRepoMock) MarkSentCalls() []struct {
	UserID uuid.UUID
	At     time.Time
} {
	mock.lockMarkSent.RLock()
	calls := mock.calls.MarkSent
	mock.lockMarkSent.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// subscriptionRepoMock
// ---------------------------------------------------------------------------

type subscriptionRepoMock struct {
	UpsertFunc               func(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error)
	ListEnabledByUserIDsFunc func(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error)
	DisableFunc              func(ctx context.Context, ids []uuid.UUID) (int, error)

	calls struct {
		Upsert []struct {
			Sub domain.PushSubscription
		}
		ListEnabledByUserIDs []struct {
			UserIDs []uuid.UUID
		}
		Disable []struct {
			IDs []uuid.UUID
		}
	}
	lockUpsert               sync.RWMutex
	lockListEnabledByUserIDs sync.RWMutex
	lockDisable              sync.RWMutex
}

func (mock *subscriptionRepoMock) Upsert(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error) {
	if mock.UpsertFunc == nil {
		panic("subscriptionRepoMock.UpsertFunc: method is nil but subscriptionRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ Sub domain.PushSubscription }{Sub: sub})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, sub)
}

func (mock *subscriptionRepoMock) UpsertCalls() []struct {
	Sub domain.PushSubscription
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) ListEnabledByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error) {
	if mock.ListEnabledByUserIDsFunc == nil {
		panic("subscriptionRepoMock.ListEnabledByUserIDsFunc: method is nil but subscriptionRepo.ListEnabledByUserIDs was just called")
	}
	mock.lockListEnabledByUserIDs.Lock()
	mock.calls.ListEnabledByUserIDs = append(mock.calls.ListEnabledByUserIDs, struct{ UserIDs []uuid.UUID }{UserIDs: userIDs})
	mock.lockListEnabledByUserIDs.Unlock()
	return mock.ListEnabledByUserIDsFunc(ctx, userIDs)
}

func (mock *subscriptionRepoMock) ListEnabledByUserIDsCalls() []struct {
	UserIDs []uuid.UUID
} {
	mock.lockListEnabledByUserIDs.RLock()
	calls := mock.calls.ListEnabledByUserIDs
	mock.lockListEnabledByUserIDs.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) Disable(ctx context.Context, ids []uuid.UUID) (int, error) {
	if mock.DisableFunc == nil {
		panic("subscriptionRepoMock.DisableFunc: method is nil but subscriptionRepo.Disable was just called")
	}
	mock.lockDisable.Lock()
	mock.calls.Disable = append(mock.calls.Disable, struct{ IDs []uuid.UUID }{IDs: ids})
	mock.lockDisable.Unlock()
	return mock.DisableFunc(ctx, ids)
}

func (mock *subscriptionRepoMock) DisableCalls() []struct {
	IDs []uuid.UUID
} {
	mock.lockDisable.RLock()
	calls := mock.calls.Disable
	mock.lockDisable.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// pushSenderMock
// ---------------------------------------------------------------------------

type pushSenderMock struct {
	SendFunc func(ctx context.Context, sub domain.PushSubscription, msg domain.PushMessage) error

	calls struct {
		Send []struct {
			Sub domain.PushSubscription
			Msg domain.PushMessage
		}
	}
	lockSend sync.RWMutex
}

func (mock *pushSenderMock) Send(ctx context.Context, sub domain.PushSubscription, msg domain.PushMessage) error {
	if mock.SendFunc == nil {
		panic("pushSenderMock.SendFunc: method is nil but pushSender.Send was just called")
	}
	callInfo := struct {
		Sub domain.PushSubscription
		Msg domain.PushMessage
	}{Sub: sub, Msg: msg}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, sub, msg)
}

func (mock *pushSenderMock) SendCalls() []struct {
	Sub domain.PushSubscription
	Msg domain.PushMessage
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
