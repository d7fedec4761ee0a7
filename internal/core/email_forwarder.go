package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// EmailForwarderService manages mail forwarders on an account.
type EmailForwarderService struct {
	db DB
}

func NewEmailForwarderService(db DB) *EmailForwarderService {
	return &EmailForwarderService{db: db}
}

const forwarderColumns = `id, email_account_id, destination, keep_copy, status, created_at, updated_at`

func scanForwarder(row interface{ Scan(dest ...any) error }) (model.EmailForwarder, error) {
	var f model.EmailForwarder
	err := row.Scan(&f.ID, &f.EmailAccountID, &f.Destination, &f.KeepCopy,
		&f.Status, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (s *EmailForwarderService) Create(ctx context.Context, fwd *model.EmailForwarder) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM email_forwarders WHERE email_account_id = $1 AND destination = $2)",
		fwd.EmailAccountID, fwd.Destination).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check forwarder destination: %w", err)
	}
	if exists {
		return fmt.Errorf("forwarder to %s already exists: %w", fwd.Destination, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO email_forwarders (id, email_account_id, destination, keep_copy, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		fwd.ID, fwd.EmailAccountID, fwd.Destination, fwd.KeepCopy,
		fwd.Status, fwd.CreatedAt, fwd.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert email forwarder: %w", err)
	}
	return nil
}

func (s *EmailForwarderService) GetByID(ctx context.Context, id string) (*model.EmailForwarder, error) {
	f, err := scanForwarder(s.db.QueryRow(ctx,
		`SELECT `+forwarderColumns+` FROM email_forwarders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get email forwarder %s: %w", id, err)
	}
	return &f, nil
}

// ListByAccount retrieves forwarders for a mailbox with cursor-based pagination.
func (s *EmailForwarderService) ListByAccount(ctx context.Context, accountID string, limit int, cursor string) ([]model.EmailForwarder, bool, error) {
	query := `SELECT ` + forwarderColumns + ` FROM email_forwarders WHERE email_account_id = $1`
	args := []any{accountID}
	argIdx := 2

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
		return nil, false, fmt.Errorf("list forwarders for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var fwds []model.EmailForwarder
	for rows.Next() {
		f, err := scanForwarder(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan email forwarder: %w", err)
		}
		fwds = append(fwds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate email forwarders: %w", err)
	}

	hasMore := len(fwds) > limit
	if hasMore {
		fwds = fwds[:limit]
	}
	return fwds, hasMore, nil
}

func (s *EmailForwarderService) Update(ctx context.Context, fwd *model.EmailForwarder) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM email_forwarders WHERE email_account_id = $1 AND destination = $2 AND id <> $3)",
		fwd.EmailAccountID, fwd.Destination, fwd.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check forwarder destination: %w", err)
	}
	if exists {
		return fmt.Errorf("forwarder to %s already exists: %w", fwd.Destination, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE email_forwarders SET destination = $1, keep_copy = $2, updated_at = now() WHERE id = $3`,
		fwd.Destination, fwd.KeepCopy, fwd.ID,
	)
	if err != nil {
		return fmt.Errorf("update email forwarder %s: %w", fwd.ID, err)
	}
	return nil
}

func (s *EmailForwarderService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM email_forwarders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete email forwarder %s: %w", id, err)
	}
	return nil
}
