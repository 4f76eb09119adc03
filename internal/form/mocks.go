package form

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/hackathon-registration/internal/client"
	"github.com/yakoovad/hackathon-registration/internal/model"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Register(ctx context.Context, payload *model.RegistrationPayload) (*client.Reply, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Reply), args.Error(1)
}
