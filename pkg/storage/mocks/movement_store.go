package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// MovementStore is a mock implementation of storage.MovementStore.
type MovementStore struct {
	mock.Mock
}

func (_m *MovementStore) Transfer(ctx context.Context, params storage.TransferParams) (*storage.MovementResult, error) {
	ret := _m.Called(ctx, params)

	var r0 *storage.MovementResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.MovementResult)
	}
	return r0, ret.Error(1)
}

func (_m *MovementStore) Pay(ctx context.Context, params storage.PaymentParams) (*storage.MovementResult, error) {
	ret := _m.Called(ctx, params)

	var r0 *storage.MovementResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.MovementResult)
	}
	return r0, ret.Error(1)
}

func (_m *MovementStore) Deposit(ctx context.Context, params storage.CashParams) (*storage.MovementResult, error) {
	ret := _m.Called(ctx, params)

	var r0 *storage.MovementResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.MovementResult)
	}
	return r0, ret.Error(1)
}

func (_m *MovementStore) Withdraw(ctx context.Context, params storage.CashParams) (*storage.MovementResult, error) {
	ret := _m.Called(ctx, params)

	var r0 *storage.MovementResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.MovementResult)
	}
	return r0, ret.Error(1)
}
