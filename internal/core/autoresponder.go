package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// AutoresponderService manages the singleton auto-reply on a mailbox.
type AutoresponderService struct {
	db DB
}

func NewAutoresponderService(db DB) *AutoresponderService {
	return &AutoresponderService{db: db}
}

// Upsert creates or updates the autoresponder for an email account.
func (s *AutoresponderService) Upsert(ctx context.Context, ar *model.Autoresponder) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO autoresponders (id, email_account_id, subject, body, start_date, end_date, enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (email_account_id) DO UPDATE SET
		   subject = EXCLUDED.subject,
		   body = EXCLUDED.body,
		   start_date = EXCLUDED.start_date,
		   end_date = EXCLUDED.end_date,
		   enabled = EXCLUDED.enabled,
		   updated_at = EXCLUDED.updated_at`,
		ar.ID, ar.EmailAccountID, ar.Subject, ar.Body, ar.StartDate, ar.EndDate,
		ar.Enabled, ar.CreatedAt, ar.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert autoresponder: %w", err)
	}

	// Fetch the actual row (in case of conflict, the ID may differ).
	var actualID string
	err = s.db.QueryRow(ctx,
		`SELECT id FROM autoresponders WHERE email_account_id = $1`, ar.EmailAccountID,
	).Scan(&actualID)
	if err != nil {
		return fmt.Errorf("get autoresponder id after upsert: %w", err)
	}
	ar.ID = actualID

	return nil
}

func (s *AutoresponderService) GetByAccountID(ctx context.Context, accountID string) (*model.Autoresponder, error) {
	var ar model.Autoresponder
	err := s.db.QueryRow(ctx,
		`SELECT id, email_account_id, subject, body, start_date, end_date, enabled, created_at, updated_at
		 FROM autoresponders WHERE email_account_id = $1`, accountID,
	).Scan(&ar.ID, &ar.EmailAccountID, &ar.Subject, &ar.Body, &ar.StartDate, &ar.EndDate,
		&ar.Enabled, &ar.CreatedAt, &ar.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get autoresponder for account %s: %w", accountID, err)
	}
	return &ar, nil
}

func (s *AutoresponderService) Delete(ctx context.Context, accountID string) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM autoresponders WHERE email_account_id = $1", accountID)
	if err != nil {
		return fmt.Errorf("delete autoresponder for account %s: %w", accountID, err)
	}
	return nil
}
