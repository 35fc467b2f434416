// Package mocks provides testify mocks for the controller package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "github.com/phi-fell/mwt/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// DisplayExpanded records the call and returns the configured error.
func (u *MockUI) DisplayExpanded(ctx context.Context, results []m.FileResult) error {
	args := u.Called(ctx, results)
	return args.Error(0)
}

// DisplayExpansions records the call and returns the configured error.
func (u *MockUI) DisplayExpansions(ctx context.Context, results []m.FileResult) error {
	args := u.Called(ctx, results)
	return args.Error(0)
}

// DisplayWatchEvent records the call.
func (u *MockUI) DisplayWatchEvent(ctx context.Context, result m.FileResult, err error) {
	u.Called(ctx, result, err)
}
