package testing

import (
	"context"

	"github.com/stockwolf/stockwolf-api/internal/clients/yahoo"
	"github.com/stretchr/testify/mock"
)

// MockQuoteClient is a testify mock of the quote client
type MockQuoteClient struct {
	mock.Mock
}

// NewMockQuoteClient creates a new mock quote client
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{}
}

func (m *MockQuoteClient) GetQuote(ctx context.Context, symbol string) (yahoo.Quote, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(yahoo.Quote), args.Error(1)
}

func (m *MockQuoteClient) GetQuotes(ctx context.Context, symbols []string) ([]yahoo.Quote, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]yahoo.Quote), args.Error(1)
}

func (m *MockQuoteClient) GetDetailedQuote(ctx context.Context, symbol string) (yahoo.DetailedQuote, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(yahoo.DetailedQuote), args.Error(1)
}

func (m *MockQuoteClient) GetDetailedQuotes(ctx context.Context, symbols []string) ([]yahoo.DetailedQuote, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]yahoo.DetailedQuote), args.Error(1)
}

func (m *MockQuoteClient) GetPriceSnapshots(ctx context.Context, symbols []string) ([]yahoo.PriceSnapshot, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]yahoo.PriceSnapshot), args.Error(1)
}
