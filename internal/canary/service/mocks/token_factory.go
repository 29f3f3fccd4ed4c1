// Package mocks provides mock implementations of the service interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/canary/service"
)

// MockTokenFactory is a mock implementation of service.TokenFactory.
type MockTokenFactory struct {
	mock.Mock
}

// NewMockTokenFactory creates a MockTokenFactory whose expectations are asserted on cleanup.
func NewMockTokenFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenFactory {
	m := &MockTokenFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Mint mocks the Mint method of TokenFactory.
func (m *MockTokenFactory) Mint(input service.MintInput) (*domain.Canary, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Canary), args.Error(1)
}
