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

func scanTestDNSRecord(id, recType, name string) func(dest ...any) error {
	now := time.Now().Truncate(time.Microsecond)
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = "test-domain-1"
		*(dest[2].(*string)) = recType
		*(dest[3].(*string)) = name
		*(dest[4].(*string)) = "192.0.2.10"
		*(dest[5].(*int)) = 3600
		*(dest[6].(**int)) = nil // priority
		*(dest[7].(*time.Time)) = now
		*(dest[8].(*time.Time)) = now
		return nil
	}
}

// ---------- Create ----------

func TestDNSRecordService_Create_ARecord(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	rec := &model.DNSRecord{
		ID:       "test-record-1",
		DomainID: "test-domain-1",
		Type:     "A",
		Name:     "www",
		Content:  "192.0.2.10",
		TTL:      3600,
	}

	// A records skip the CNAME exclusivity check entirely.
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, rec)
	require.NoError(t, err)
	db.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
	db.AssertExpectations(t)
}

func TestDNSRecordService_Create_CNAMEConflict(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	rec := &model.DNSRecord{
		ID:       "test-record-1",
		DomainID: "test-domain-1",
		Type:     "CNAME",
		Name:     "www",
		Content:  "example.com.",
		TTL:      3600,
	}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(true))

	err := svc.Create(ctx, rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	db.AssertExpectations(t)
}

func TestDNSRecordService_Create_CNAMENoConflict(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	rec := &model.DNSRecord{
		ID:       "test-record-1",
		DomainID: "test-domain-1",
		Type:     "CNAME",
		Name:     "blog",
		Content:  "example.com.",
		TTL:      3600,
	}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(existsRow(false))
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, rec)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// ---------- ListByDomain ----------

func TestDNSRecordService_ListByDomain_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	rows := newMockRows(
		scanTestDNSRecord("test-record-1", "A", "www"),
		scanTestDNSRecord("test-record-2", "A", "mail"),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, hasMore, err := svc.ListByDomain(ctx, "test-domain-1", 50, "", "")
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, result, 2)
	assert.Equal(t, "www", result[0].Name)
	db.AssertExpectations(t)
}

func TestDNSRecordService_ListByDomain_TypeFilter(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		return len(args) == 3 && args[1] == "MX"
	})).Return(newEmptyMockRows(), nil)

	_, _, err := svc.ListByDomain(ctx, "test-domain-1", 50, "", "MX")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestDNSRecordService_ListByDomain_QueryError(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil, errors.New("db error"))

	result, _, err := svc.ListByDomain(ctx, "test-domain-1", 50, "", "")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "list DNS records")
	db.AssertExpectations(t)
}

// ---------- Update ----------

func TestDNSRecordService_Update_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	prio := 10
	rec := &model.DNSRecord{ID: "test-record-1", Name: "mail", Content: "mx1.example.com.", TTL: 7200, Priority: &prio}
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Update(ctx, rec)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// ---------- Delete ----------

func TestDNSRecordService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDNSRecordService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{"test-record-1"}).Return(pgconn.CommandTag{}, nil)

	err := svc.Delete(ctx, "test-record-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}
