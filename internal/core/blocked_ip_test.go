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

func scanTestBlockedIP(id, cidr string) func(dest ...any) error {
	now := time.Now().Truncate(time.Microsecond)
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = cidr
		*(dest[2].(**string)) = nil // reason
		*(dest[3].(*time.Time)) = now
		*(dest[4].(*time.Time)) = now
		return nil
	}
}

func TestBlockedIPService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewBlockedIPService(db)
	ctx := context.Background()

	block := &model.BlockedIP{
		ID:        "test-block-1",
		CIDR:      "192.0.2.10/32",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(false))
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, block)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestBlockedIPService_Create_AlreadyBlocked(t *testing.T) {
	db := &mockDB{}
	svc := NewBlockedIPService(db)
	ctx := context.Background()

	block := &model.BlockedIP{ID: "test-block-1", CIDR: "192.0.2.10/32"}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(true))

	err := svc.Create(ctx, block)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "192.0.2.10/32")
	db.AssertExpectations(t)
}

func TestBlockedIPService_List_Pagination(t *testing.T) {
	db := &mockDB{}
	svc := NewBlockedIPService(db)
	ctx := context.Background()

	rows := newMockRows(
		scanTestBlockedIP("test-block-1", "192.0.2.10/32"),
		scanTestBlockedIP("test-block-2", "198.51.100.0/24"),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, hasMore, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, result, 1)
	assert.Equal(t, "192.0.2.10/32", result[0].CIDR)
	db.AssertExpectations(t)
}

func TestBlockedIPService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewBlockedIPService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{"test-block-1"}).Return(pgconn.CommandTag{}, nil)

	err := svc.Delete(ctx, "test-block-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}
