package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)

	calls struct {
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockListByUser sync.RWMutex
}

func (mock *wordRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error) {
	if mock.ListByUserFunc == nil {
		panic("wordRepoMock.ListByUserFunc: method is nil but wordRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *wordRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}
