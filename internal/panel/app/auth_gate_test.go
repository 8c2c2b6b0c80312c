package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userpanel/internal/panel/app"
	"userpanel/internal/panel/domain/entities"
)

func TestIsUserValid(t *testing.T) {
	tests := []struct {
		name        string
		userID      int64
		setupMocks  func(users *mockUserRepository)
		expected    bool
		expectedErr error
	}{
		{
			name:   "valid - active user",
			userID: 1,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, int64(1)).
					Return(&entities.User{ID: 1, Status: entities.StatusActive}, nil).Once()
			},
			expected: true,
		},
		{
			name:   "invalid - blocked user",
			userID: 2,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, int64(2)).
					Return(&entities.User{ID: 2, Status: entities.StatusBlocked}, nil).Once()
			},
			expected: false,
		},
		{
			name:   "invalid - deleted or unknown user",
			userID: 3,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, int64(3)).
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expected: false,
		},
		{
			name:   "error - storage failure",
			userID: 4,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, int64(4)).
					Return(nil, errStorageUnavailable).Once()
			},
			expected:    false,
			expectedErr: errStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			tt.setupMocks(users)

			valid, err := app.NewAuthGate(users).IsUserValid(context.Background(), tt.userID)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, valid)

			users.AssertExpectations(t)
		})
	}
}
