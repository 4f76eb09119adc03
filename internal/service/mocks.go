package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/hackathon-registration/internal/model"
	"github.com/yakoovad/hackathon-registration/internal/repository"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *repository.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) AddMembers(ctx context.Context, hackathonID string, members []*repository.Member) error {
	args := m.Called(ctx, hackathonID, members)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Get(ctx context.Context, hackathonID string) (*repository.Registration, error) {
	args := m.Called(ctx, hackathonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) GetMembers(ctx context.Context, hackathonID string) ([]*repository.Member, error) {
	args := m.Called(ctx, hackathonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Member), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, reg *model.Registration) bool {
	args := m.Called(ctx, reg)
	return args.Bool(0)
}
