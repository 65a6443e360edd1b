package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeDatabase, "connection failed"),
			expected: "[DATABASE_ERROR] connection failed",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodePersistence, "write failed", errors.New("disk full")),
			expected: "[PERSISTENCE_ERROR] write failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeParseError, "parse failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeDatabase, "error 1")
	err2 := New(CodeDatabase, "error 2")
	err3 := New(CodePersistence, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsNotText(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "not-text error",
			err:      ErrNotText,
			expected: true,
		},
		{
			name:     "wrapped not-text error",
			err:      Wrap(CodeNotText, "binary garbage", errors.New("invalid utf-8")),
			expected: true,
		},
		{
			name:     "other error",
			err:      ErrUnrecognized,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotText(tt.err))
		})
	}
}

func TestIsUnrecognized(t *testing.T) {
	assert.True(t, IsUnrecognized(ErrUnrecognized))
	assert.True(t, IsUnrecognized(Wrap(CodeUnrecognized, "no match", nil)))
	assert.False(t, IsUnrecognized(ErrNotText))
}

func TestIsPersistence(t *testing.T) {
	assert.True(t, IsPersistence(ErrPersistence))
	assert.False(t, IsPersistence(ErrDatabase))
}

func TestIsDatabase(t *testing.T) {
	assert.True(t, IsDatabase(ErrDatabase))
	assert.False(t, IsDatabase(ErrPersistence))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(ErrDatabase))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeDatabase, "db error"),
			expected: CodeDatabase,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeParseError, "parse", errors.New("inner")),
			expected: CodeParseError,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeDatabase, "db connection failed"),
			expected: "db connection failed",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
