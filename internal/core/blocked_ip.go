package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// BlockedIPService manages the firewall deny list.
type BlockedIPService struct {
	db DB
}

func NewBlockedIPService(db DB) *BlockedIPService {
	return &BlockedIPService{db: db}
}

const blockedIPColumns = `id, cidr, reason, created_at, updated_at`

func scanBlockedIP(row interface{ Scan(dest ...any) error }) (model.BlockedIP, error) {
	var b model.BlockedIP
	err := row.Scan(&b.ID, &b.CIDR, &b.Reason, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create records a deny entry. The CIDR is expected to already be in
// canonical form; an identical entry is a conflict.
func (s *BlockedIPService) Create(ctx context.Context, block *model.BlockedIP) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM blocked_ips WHERE cidr = $1)", block.CIDR).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check blocked cidr: %w", err)
	}
	if exists {
		return fmt.Errorf("%s is already blocked: %w", block.CIDR, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO blocked_ips (id, cidr, reason, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		block.ID, block.CIDR, block.Reason, block.CreatedAt, block.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blocked ip: %w", err)
	}
	return nil
}

func (s *BlockedIPService) GetByID(ctx context.Context, id string) (*model.BlockedIP, error) {
	b, err := scanBlockedIP(s.db.QueryRow(ctx,
		`SELECT `+blockedIPColumns+` FROM blocked_ips WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get blocked ip %s: %w", id, err)
	}
	return &b, nil
}

func (s *BlockedIPService) List(ctx context.Context, limit int, cursor string) ([]model.BlockedIP, bool, error) {
	query := `SELECT ` + blockedIPColumns + ` FROM blocked_ips WHERE true`
	args := []any{}
	argIdx := 1

	if cursor != "" {
		query += fmt.Sprintf(` AND id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list blocked ips: %w", err)
	}
	defer rows.Close()

	var blocks []model.BlockedIP
	for rows.Next() {
		b, err := scanBlockedIP(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan blocked ip: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate blocked ips: %w", err)
	}

	hasMore := len(blocks) > limit
	if hasMore {
		blocks = blocks[:limit]
	}
	return blocks, hasMore, nil
}

func (s *BlockedIPService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM blocked_ips WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete blocked ip %s: %w", id, err)
	}
	return nil
}
