package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edvin/panel/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scanTestDaemon(id, name string, enabled bool, status string) func(dest ...any) error {
	now := time.Now().Truncate(time.Microsecond)
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = name
		*(dest[2].(*string)) = model.DaemonWebServer
		*(dest[3].(*bool)) = enabled
		*(dest[4].(*string)) = status
		*(dest[5].(**string)) = nil // status_message
		*(dest[6].(**time.Time)) = nil
		*(dest[7].(*time.Time)) = now
		*(dest[8].(*time.Time)) = now
		return nil
	}
}

func TestDaemonService_List_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	rows := newMockRows(
		scanTestDaemon("test-daemon-1", "apache2", true, model.StatusActive),
		scanTestDaemon("test-daemon-2", "exim", true, model.StatusActive),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "apache2", result[0].Name)
	db.AssertExpectations(t)
}

func TestDaemonService_Restart_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: scanTestDaemon("test-daemon-1", "apache2", true, model.StatusActive)}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)
	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{"test-daemon-1", model.StatusRestarting}).Return(pgconn.CommandTag{}, nil)

	err := svc.Restart(ctx, "test-daemon-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestDaemonService_Restart_Disabled(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: scanTestDaemon("test-daemon-1", "apache2", false, model.StatusActive)}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	err := svc.Restart(ctx, "test-daemon-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestDaemonService_Restart_AlreadyRestarting(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: scanTestRestartingDaemon("test-daemon-1", "apache2", time.Now())}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	err := svc.Restart(ctx, "test-daemon-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func scanTestRestartingDaemon(id, name string, restartedAt time.Time) func(dest ...any) error {
	now := time.Now().Truncate(time.Microsecond)
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = name
		*(dest[2].(*string)) = model.DaemonWebServer
		*(dest[3].(*bool)) = true
		*(dest[4].(*string)) = model.StatusRestarting
		*(dest[5].(**string)) = nil
		*(dest[6].(**time.Time)) = &restartedAt
		*(dest[7].(*time.Time)) = now
		*(dest[8].(*time.Time)) = now
		return nil
	}
}

func TestDaemonService_GetByID_SettlesExpiredRestart(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: scanTestRestartingDaemon("test-daemon-1", "apache2", time.Now().Add(-time.Minute))}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)
	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{"test-daemon-1", model.StatusActive, model.StatusRestarting}).Return(pgconn.CommandTag{}, nil)

	result, err := svc.GetByID(ctx, "test-daemon-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, result.Status)
	db.AssertExpectations(t)
}

func TestDaemonService_GetByID_KeepsFreshRestart(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: scanTestRestartingDaemon("test-daemon-1", "apache2", time.Now())}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, err := svc.GetByID(ctx, "test-daemon-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRestarting, result.Status)
	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestDaemonService_Restart_AfterExpiredRestart(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	// The previous restart ran out its grace period, so a new one is allowed.
	row := &mockRow{scanFunc: scanTestRestartingDaemon("test-daemon-1", "apache2", time.Now().Add(-time.Minute))}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)
	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{"test-daemon-1", model.StatusActive, model.StatusRestarting}).Return(pgconn.CommandTag{}, nil).Once()
	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{"test-daemon-1", model.StatusRestarting}).Return(pgconn.CommandTag{}, nil).Once()

	err := svc.Restart(ctx, "test-daemon-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestDaemonService_Restart_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewDaemonService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("no rows in result set")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	err := svc.Restart(ctx, "nonexistent-daemon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get daemon")
}
