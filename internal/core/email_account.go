package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// EmailAccountService manages mailboxes on a domain.
type EmailAccountService struct {
	db DB
}

func NewEmailAccountService(db DB) *EmailAccountService {
	return &EmailAccountService{db: db}
}

const emailAccountColumns = `id, domain_id, address, display_name, password_hash, quota_bytes, used_bytes, status, created_at, updated_at`

func scanEmailAccount(row interface{ Scan(dest ...any) error }) (model.EmailAccount, error) {
	var a model.EmailAccount
	err := row.Scan(&a.ID, &a.DomainID, &a.Address, &a.DisplayName, &a.PasswordHash,
		&a.QuotaBytes, &a.UsedBytes, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *EmailAccountService) Create(ctx context.Context, account *model.EmailAccount) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM email_accounts WHERE address = $1)", account.Address).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check email address: %w", err)
	}
	if exists {
		return fmt.Errorf("mailbox %s already exists: %w", account.Address, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO email_accounts (id, domain_id, address, display_name, password_hash, quota_bytes, used_bytes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID, account.DomainID, account.Address, account.DisplayName,
		account.PasswordHash, account.QuotaBytes, account.UsedBytes,
		account.Status, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert email account: %w", err)
	}
	return nil
}

func (s *EmailAccountService) GetByID(ctx context.Context, id string) (*model.EmailAccount, error) {
	a, err := scanEmailAccount(s.db.QueryRow(ctx,
		`SELECT `+emailAccountColumns+` FROM email_accounts WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get email account %s: %w", id, err)
	}
	return &a, nil
}

// ListByDomain retrieves mailboxes for a domain with cursor-based pagination.
// Search matches against the address.
func (s *EmailAccountService) ListByDomain(ctx context.Context, domainID string, limit int, cursor, search string) ([]model.EmailAccount, bool, error) {
	query := `SELECT ` + emailAccountColumns + ` FROM email_accounts WHERE domain_id = $1`
	args := []any{domainID}
	argIdx := 2

	if search != "" {
		query += fmt.Sprintf(` AND address ILIKE $%d`, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if cursor != "" {
		query += fmt.Sprintf(` AND id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += ` ORDER BY id`
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list email accounts for domain %s: %w", domainID, err)
	}
	defer rows.Close()

	var accounts []model.EmailAccount
	for rows.Next() {
		a, err := scanEmailAccount(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan email account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate email accounts: %w", err)
	}

	hasMore := len(accounts) > limit
	if hasMore {
		accounts = accounts[:limit]
	}
	return accounts, hasMore, nil
}

func (s *EmailAccountService) Update(ctx context.Context, account *model.EmailAccount) error {
	_, err := s.db.Exec(ctx,
		`UPDATE email_accounts SET display_name = $1, password_hash = $2, quota_bytes = $3, status = $4, updated_at = now()
		 WHERE id = $5`,
		account.DisplayName, account.PasswordHash, account.QuotaBytes, account.Status, account.ID,
	)
	if err != nil {
		return fmt.Errorf("update email account %s: %w", account.ID, err)
	}
	return nil
}

// Delete removes the mailbox along with its forwarders and autoresponder.
func (s *EmailAccountService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM email_accounts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete email account %s: %w", id, err)
	}
	return nil
}
