package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/model"
)

// DomainService manages hosted domains.
type DomainService struct {
	db DB
}

func NewDomainService(db DB) *DomainService {
	return &DomainService{db: db}
}

const domainColumns = `id, name, document_root, php_version, status, status_message, created_at, updated_at`

func scanDomain(row interface{ Scan(dest ...any) error }) (model.Domain, error) {
	var d model.Domain
	err := row.Scan(&d.ID, &d.Name, &d.DocumentRoot, &d.PHPVersion,
		&d.Status, &d.StatusMessage, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (s *DomainService) Create(ctx context.Context, domain *model.Domain) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM domains WHERE name = $1)", domain.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check domain name: %w", err)
	}
	if exists {
		return fmt.Errorf("domain %s already exists: %w", domain.Name, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO domains (id, name, document_root, php_version, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		domain.ID, domain.Name, domain.DocumentRoot, domain.PHPVersion,
		domain.Status, domain.CreatedAt, domain.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert domain: %w", err)
	}
	return nil
}

func (s *DomainService) GetByID(ctx context.Context, id string) (*model.Domain, error) {
	d, err := scanDomain(s.db.QueryRow(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get domain %s: %w", id, err)
	}
	return &d, nil
}

func (s *DomainService) List(ctx context.Context, params request.ListParams) ([]model.Domain, bool, error) {
	query := `SELECT ` + domainColumns + ` FROM domains WHERE true`
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, params.Status)
		argIdx++
	}
	sortCol := "created_at"
	switch params.Sort {
	case "name":
		sortCol = "name"
	case "status":
		sortCol = "status"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	if params.Cursor != "" {
		query += keysetPredicate("domains", sortCol, order, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, sortCol, order, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	var domains []model.Domain
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate domains: %w", err)
	}

	hasMore := len(domains) > params.Limit
	if hasMore {
		domains = domains[:params.Limit]
	}
	return domains, hasMore, nil
}

func (s *DomainService) Update(ctx context.Context, domain *model.Domain) error {
	_, err := s.db.Exec(ctx,
		`UPDATE domains SET document_root = $1, php_version = $2, status = $3, updated_at = now()
		 WHERE id = $4`,
		domain.DocumentRoot, domain.PHPVersion, domain.Status, domain.ID,
	)
	if err != nil {
		return fmt.Errorf("update domain %s: %w", domain.ID, err)
	}
	return nil
}

// Delete removes the domain. Subdomains, DNS records, mailboxes, vhosts, and
// certificates go with it via foreign keys.
func (s *DomainService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM domains WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete domain %s: %w", id, err)
	}
	return nil
}
