package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// SubdomainService manages subdomains under a domain.
type SubdomainService struct {
	db DB
}

func NewSubdomainService(db DB) *SubdomainService {
	return &SubdomainService{db: db}
}

const subdomainColumns = `id, domain_id, host, document_root, status, created_at, updated_at`

func scanSubdomain(row interface{ Scan(dest ...any) error }) (model.Subdomain, error) {
	var sd model.Subdomain
	err := row.Scan(&sd.ID, &sd.DomainID, &sd.Host, &sd.DocumentRoot,
		&sd.Status, &sd.CreatedAt, &sd.UpdatedAt)
	return sd, err
}

func (s *SubdomainService) Create(ctx context.Context, sub *model.Subdomain) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM subdomains WHERE domain_id = $1 AND host = $2)",
		sub.DomainID, sub.Host).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check subdomain host: %w", err)
	}
	if exists {
		return fmt.Errorf("subdomain %s already exists on this domain: %w", sub.Host, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO subdomains (id, domain_id, host, document_root, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.DomainID, sub.Host, sub.DocumentRoot,
		sub.Status, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subdomain: %w", err)
	}
	return nil
}

func (s *SubdomainService) GetByID(ctx context.Context, id string) (*model.Subdomain, error) {
	sd, err := scanSubdomain(s.db.QueryRow(ctx,
		`SELECT `+subdomainColumns+` FROM subdomains WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get subdomain %s: %w", id, err)
	}
	return &sd, nil
}

// ListByDomain retrieves subdomains for a domain with cursor-based pagination.
func (s *SubdomainService) ListByDomain(ctx context.Context, domainID string, limit int, cursor string) ([]model.Subdomain, bool, error) {
	query := `SELECT ` + subdomainColumns + ` FROM subdomains WHERE domain_id = $1`
	args := []any{domainID}
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
		return nil, false, fmt.Errorf("list subdomains for domain %s: %w", domainID, err)
	}
	defer rows.Close()

	var subs []model.Subdomain
	for rows.Next() {
		sd, err := scanSubdomain(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan subdomain: %w", err)
		}
		subs = append(subs, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate subdomains: %w", err)
	}

	hasMore := len(subs) > limit
	if hasMore {
		subs = subs[:limit]
	}
	return subs, hasMore, nil
}

func (s *SubdomainService) Update(ctx context.Context, sub *model.Subdomain) error {
	_, err := s.db.Exec(ctx,
		`UPDATE subdomains SET document_root = $1, status = $2, updated_at = now() WHERE id = $3`,
		sub.DocumentRoot, sub.Status, sub.ID,
	)
	if err != nil {
		return fmt.Errorf("update subdomain %s: %w", sub.ID, err)
	}
	return nil
}

func (s *SubdomainService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM subdomains WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete subdomain %s: %w", id, err)
	}
	return nil
}
