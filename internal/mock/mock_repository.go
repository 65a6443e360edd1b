package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mod-analysis/pkg/model"
)

// MockRunRepository is a mock implementation of the RunRepository interface.
type MockRunRepository struct {
	mock.Mock
}

// SaveRun mocks the SaveRun method.
func (m *MockRunRepository) SaveRun(ctx context.Context, run *model.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// GetRunByID mocks the GetRunByID method.
func (m *MockRunRepository) GetRunByID(ctx context.Context, id int64) (*model.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

// ListRuns mocks the ListRuns method.
func (m *MockRunRepository) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Run), args.Error(1)
}

// ListRunsByKind mocks the ListRunsByKind method.
func (m *MockRunRepository) ListRunsByKind(ctx context.Context, kind model.RunKind, limit int) ([]*model.Run, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Run), args.Error(1)
}

// DeleteRunsBefore mocks the DeleteRunsBefore method.
func (m *MockRunRepository) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// ExpectSaveRun sets up an expectation for SaveRun.
func (m *MockRunRepository) ExpectSaveRun(err error) *mock.Call {
	return m.On("SaveRun", mock.Anything, mock.Anything).Return(err)
}

// ExpectListRuns sets up an expectation for ListRuns.
func (m *MockRunRepository) ExpectListRuns(limit int, runs []*model.Run, err error) *mock.Call {
	return m.On("ListRuns", mock.Anything, limit).Return(runs, err)
}

// ExpectGetRunByID sets up an expectation for GetRunByID.
func (m *MockRunRepository) ExpectGetRunByID(id int64, run *model.Run, err error) *mock.Call {
	return m.On("GetRunByID", mock.Anything, id).Return(run, err)
}
