package mocks

import (
	"context"

	"pydenweb/internal/model"
	"pydenweb/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockQRCodeRepository struct {
	mock.Mock
}

func (m *MockQRCodeRepository) Create(ctx context.Context, rec *model.QRCode) (*model.QRCode, error) {
	args := m.Called(ctx, rec)
	if f, ok := args.Get(0).(func(context.Context, *model.QRCode) *model.QRCode); ok {
		return f(ctx, rec), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}

func (m *MockQRCodeRepository) List(ctx context.Context, f repository.ListFilter) ([]model.QRCode, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QRCode), args.Error(1)
}

func (m *MockQRCodeRepository) FindByPublicID(ctx context.Context, publicID string) (*model.QRCode, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}
