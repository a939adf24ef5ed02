package mocks

import (
	"context"
	"io"

	"pydenweb/internal/model"
	"pydenweb/internal/service"
	"pydenweb/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) Issue(ctx context.Context, rawType, description, externalID string) (*service.IssueResult, error) {
	args := m.Called(ctx, rawType, description, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IssueResult), args.Error(1)
}

func (m *MockQRCodeService) List(ctx context.Context, rawType, search string) ([]model.QRCode, error) {
	args := m.Called(ctx, rawType, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QRCode), args.Error(1)
}

func (m *MockQRCodeService) Validate(ctx context.Context, publicID string) (*model.QRCode, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}

func (m *MockQRCodeService) Image(ctx context.Context, publicID string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, publicID)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Send(ctx context.Context, req service.ContactRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}
