package core

import (
	"context"
	"testing"
	"time"

	"github.com/edvin/panel/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scanTestForwarder(id, destination string) func(dest ...any) error {
	now := time.Now().Truncate(time.Microsecond)
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = "test-account-1"
		*(dest[2].(*string)) = destination
		*(dest[3].(*bool)) = false
		*(dest[4].(*string)) = model.StatusActive
		*(dest[5].(*time.Time)) = now
		*(dest[6].(*time.Time)) = now
		return nil
	}
}

func TestEmailForwarderService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewEmailForwarderService(db)
	ctx := context.Background()

	fwd := &model.EmailForwarder{
		ID:             "test-fwd-1",
		EmailAccountID: "test-account-1",
		Destination:    "elsewhere@example.net",
		Status:         model.StatusActive,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(false))
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, fwd)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestEmailForwarderService_Create_Duplicate(t *testing.T) {
	db := &mockDB{}
	svc := NewEmailForwarderService(db)
	ctx := context.Background()

	fwd := &model.EmailForwarder{
		ID:             "test-fwd-1",
		EmailAccountID: "test-account-1",
		Destination:    "elsewhere@example.net",
	}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(true))

	err := svc.Create(ctx, fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEmailForwarderService_Update_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewEmailForwarderService(db)
	ctx := context.Background()

	fwd := &model.EmailForwarder{
		ID:             "test-fwd-1",
		EmailAccountID: "test-account-1",
		Destination:    "elsewhere@example.net",
		KeepCopy:       true,
	}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"),
		[]any{"test-account-1", "elsewhere@example.net", "test-fwd-1"}).Return(existsRow(false))
	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{"elsewhere@example.net", true, "test-fwd-1"}).Return(pgconn.CommandTag{}, nil)

	err := svc.Update(ctx, fwd)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestEmailForwarderService_Update_DuplicateDestination(t *testing.T) {
	db := &mockDB{}
	svc := NewEmailForwarderService(db)
	ctx := context.Background()

	fwd := &model.EmailForwarder{
		ID:             "test-fwd-1",
		EmailAccountID: "test-account-1",
		Destination:    "elsewhere@example.net",
	}

	// Another forwarder on the same account already targets this destination.
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(true))

	err := svc.Update(ctx, fwd)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmailForwarderService_ListByAccount(t *testing.T) {
	db := &mockDB{}
	svc := NewEmailForwarderService(db)
	ctx := context.Background()

	rows := newMockRows(
		scanTestForwarder("test-fwd-1", "a@example.net"),
		scanTestForwarder("test-fwd-2", "b@example.net"),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	forwarders, hasMore, err := svc.ListByAccount(ctx, "test-account-1", 50, "")
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, forwarders, 2)
	assert.Equal(t, "a@example.net", forwarders[0].Destination)
}
