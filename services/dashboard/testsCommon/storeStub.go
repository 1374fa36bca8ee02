package testsCommon

import (
	"context"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
)

// StoreStub -
type StoreStub struct {
	SaveSessionHandler   func(ctx context.Context, session common.Session) error
	GetSessionHandler    func(ctx context.Context, token string) (common.Session, error)
	DeleteSessionHandler func(ctx context.Context, token string) error
	CloseHandler         func() error
}

// SaveSession -
func (stub *StoreStub) SaveSession(ctx context.Context, session common.Session) error {
	if stub.SaveSessionHandler != nil {
		return stub.SaveSessionHandler(ctx, session)
	}

	return nil
}

// GetSession -
func (stub *StoreStub) GetSession(ctx context.Context, token string) (common.Session, error) {
	if stub.GetSessionHandler != nil {
		return stub.GetSessionHandler(ctx, token)
	}

	return common.Session{}, nil
}

// DeleteSession -
func (stub *StoreStub) DeleteSession(ctx context.Context, token string) error {
	if stub.DeleteSessionHandler != nil {
		return stub.DeleteSessionHandler(ctx, token)
	}

	return nil
}

// Close -
func (stub *StoreStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StoreStub) IsInterfaceNil() bool {
	return stub == nil
}
