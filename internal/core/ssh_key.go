package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// SSHKeyService manages authorized public keys.
type SSHKeyService struct {
	db DB
}

func NewSSHKeyService(db DB) *SSHKeyService {
	return &SSHKeyService{db: db}
}

const sshKeyColumns = `id, name, public_key, fingerprint, status, created_at, updated_at`

func scanSSHKey(row interface{ Scan(dest ...any) error }) (model.SSHKey, error) {
	var k model.SSHKey
	err := row.Scan(&k.ID, &k.Name, &k.PublicKey, &k.Fingerprint, &k.Status,
		&k.CreatedAt, &k.UpdatedAt)
	return k, err
}

// Create stores a key. Duplicate fingerprints are rejected so the same key
// cannot be authorized twice under different names.
func (s *SSHKeyService) Create(ctx context.Context, key *model.SSHKey) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM ssh_keys WHERE fingerprint = $1)", key.Fingerprint).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check ssh key fingerprint: %w", err)
	}
	if exists {
		return fmt.Errorf("ssh key %s already authorized: %w", key.Fingerprint, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO ssh_keys (id, name, public_key, fingerprint, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		key.ID, key.Name, key.PublicKey, key.Fingerprint, key.Status,
		key.CreatedAt, key.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ssh key: %w", err)
	}
	return nil
}

func (s *SSHKeyService) GetByID(ctx context.Context, id string) (*model.SSHKey, error) {
	k, err := scanSSHKey(s.db.QueryRow(ctx,
		`SELECT `+sshKeyColumns+` FROM ssh_keys WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get ssh key %s: %w", id, err)
	}
	return &k, nil
}

func (s *SSHKeyService) List(ctx context.Context, limit int, cursor string) ([]model.SSHKey, bool, error) {
	query := `SELECT ` + sshKeyColumns + ` FROM ssh_keys WHERE true`
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
		return nil, false, fmt.Errorf("list ssh keys: %w", err)
	}
	defer rows.Close()

	var keys []model.SSHKey
	for rows.Next() {
		k, err := scanSSHKey(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan ssh key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate ssh keys: %w", err)
	}

	hasMore := len(keys) > limit
	if hasMore {
		keys = keys[:limit]
	}
	return keys, hasMore, nil
}

func (s *SSHKeyService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM ssh_keys WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete ssh key %s: %w", id, err)
	}
	return nil
}
