package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userpanel/internal/panel/app"
	"userpanel/internal/panel/domain/entities"
)

func TestListUsers(t *testing.T) {
	lastLogin := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	visible := []entities.User{
		{ID: 2, Name: "Bob", Email: "bob@example.com", Status: entities.StatusActive, LastLogin: &lastLogin},
		{ID: 1, Name: "Ann", Email: "ann@example.com", Status: entities.StatusBlocked},
	}

	t.Run("success - visible users returned in storage order", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("ListAllVisible", mock.Anything).Return(visible, nil).Once()

		got, err := app.NewAdminUseCase(users).ListUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, visible, got)
		users.AssertExpectations(t)
	})

	t.Run("success - empty panel", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("ListAllVisible", mock.Anything).Return([]entities.User{}, nil).Once()

		got, err := app.NewAdminUseCase(users).ListUsers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("error - storage failure", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("ListAllVisible", mock.Anything).Return(nil, errStorageUnavailable).Once()

		got, err := app.NewAdminUseCase(users).ListUsers(context.Background())
		assert.ErrorIs(t, err, errStorageUnavailable)
		assert.Nil(t, got)
	})
}

func TestBulkStatusOperations(t *testing.T) {
	ids := []int64{1, 2, 3}

	tests := []struct {
		name           string
		run            func(useCase *app.AdminUseCase, ctx context.Context) error
		expectedStatus entities.Status
	}{
		{
			name: "block users",
			run: func(useCase *app.AdminUseCase, ctx context.Context) error {
				return useCase.BlockUsers(ctx, ids)
			},
			expectedStatus: entities.StatusBlocked,
		},
		{
			name: "unblock users",
			run: func(useCase *app.AdminUseCase, ctx context.Context) error {
				return useCase.UnblockUsers(ctx, ids)
			},
			expectedStatus: entities.StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			users.On("BulkSetStatus", mock.Anything, ids, tt.expectedStatus).Return(nil).Once()

			err := tt.run(app.NewAdminUseCase(users), context.Background())
			require.NoError(t, err)
			users.AssertExpectations(t)
		})
	}

	t.Run("error - storage failure surfaces", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("BulkSetStatus", mock.Anything, ids, entities.StatusBlocked).
			Return(errStorageUnavailable).Once()

		err := app.NewAdminUseCase(users).BlockUsers(context.Background(), ids)
		assert.ErrorIs(t, err, errStorageUnavailable)
	})
}

func TestDeleteUsers(t *testing.T) {
	ids := []int64{4, 5}

	t.Run("success - users soft deleted", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("BulkSoftDelete", mock.Anything, ids).Return(nil).Once()

		require.NoError(t, app.NewAdminUseCase(users).DeleteUsers(context.Background(), ids))
		users.AssertExpectations(t)
	})

	t.Run("error - storage failure surfaces", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("BulkSoftDelete", mock.Anything, ids).Return(errStorageUnavailable).Once()

		err := app.NewAdminUseCase(users).DeleteUsers(context.Background(), ids)
		assert.ErrorIs(t, err, errStorageUnavailable)
	})
}
