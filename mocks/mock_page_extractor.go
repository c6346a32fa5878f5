package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billex/internal/port"
)

// MockPageExtractor is a mock implementation of port.PageExtractor.
type MockPageExtractor struct {
	mock.Mock
}

func (m *MockPageExtractor) ExtractPage(ctx context.Context, input port.ExtractInput) (*port.RawExtraction, *port.Usage, error) {
	args := m.Called(ctx, input)
	var raw *port.RawExtraction
	if args.Get(0) != nil {
		raw = args.Get(0).(*port.RawExtraction)
	}
	var usage *port.Usage
	if args.Get(1) != nil {
		usage = args.Get(1).(*port.Usage)
	}
	return raw, usage, args.Error(2)
}
