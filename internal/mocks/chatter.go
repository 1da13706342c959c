// Package mocks provides test doubles for the external service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Chatter is a testify mock for llm.Chatter.
type Chatter struct {
	mock.Mock
}

// Chat implements llm.Chatter.
func (m *Chatter) Chat(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

// NewChatter creates a mock whose expectations are asserted on cleanup.
func NewChatter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Chatter {
	m := &Chatter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
