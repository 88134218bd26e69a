package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ snapshotStore = &snapshotStoreMock{}

type snapshotStoreMock struct {
	LoadFunc   func(ctx context.Context, userID uuid.UUID) ([]byte, error)
	SaveFunc   func(ctx context.Context, userID uuid.UUID, payload []byte) error
	DeleteFunc func(ctx context.Context, userID uuid.UUID) error

	calls struct {
		Load []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Save []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Payload []byte
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockLoad   sync.RWMutex
	lockSave   sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *snapshotStoreMock) Load(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if mock.LoadFunc == nil {
		panic("snapshotStoreMock.LoadFunc: method is nil but snapshotStore.Load was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, userID)
}

func (mock *snapshotStoreMock) LoadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *snapshotStoreMock) Save(ctx context.Context, userID uuid.UUID, payload []byte) error {
	if mock.SaveFunc == nil {
		panic("snapshotStoreMock.SaveFunc: method is nil but snapshotStore.Save was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Payload []byte
	}{Ctx: ctx, UserID: userID, Payload: payload}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, userID, payload)
}

func (mock *snapshotStoreMock) SaveCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Payload []byte
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *snapshotStoreMock) Delete(ctx context.Context, userID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("snapshotStoreMock.DeleteFunc: method is nil but snapshotStore.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID)
}

func (mock *snapshotStoreMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
