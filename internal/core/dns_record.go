package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/model"
)

// DNSRecordService manages DNS records within a domain's zone.
type DNSRecordService struct {
	db DB
}

func NewDNSRecordService(db DB) *DNSRecordService {
	return &DNSRecordService{db: db}
}

const dnsRecordColumns = `id, domain_id, type, name, content, ttl, priority, created_at, updated_at`

func scanDNSRecord(row interface{ Scan(dest ...any) error }) (model.DNSRecord, error) {
	var rec model.DNSRecord
	err := row.Scan(&rec.ID, &rec.DomainID, &rec.Type, &rec.Name, &rec.Content,
		&rec.TTL, &rec.Priority, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func (s *DNSRecordService) Create(ctx context.Context, rec *model.DNSRecord) error {
	// CNAME may not coexist with any other record of the same name.
	if rec.Type == "CNAME" {
		var exists bool
		err := s.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM dns_records WHERE domain_id = $1 AND name = $2)",
			rec.DomainID, rec.Name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check CNAME conflict: %w", err)
		}
		if exists {
			return fmt.Errorf("a record named %s already exists, CNAME must be exclusive: %w", rec.Name, ErrConflict)
		}
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO dns_records (id, domain_id, type, name, content, ttl, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.DomainID, rec.Type, rec.Name, rec.Content,
		rec.TTL, rec.Priority, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert DNS record: %w", err)
	}
	return nil
}

func (s *DNSRecordService) GetByID(ctx context.Context, id string) (*model.DNSRecord, error) {
	rec, err := scanDNSRecord(s.db.QueryRow(ctx,
		`SELECT `+dnsRecordColumns+` FROM dns_records WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get DNS record %s: %w", id, err)
	}
	return &rec, nil
}

// ListByDomain retrieves DNS records for a domain with cursor-based pagination.
// An optional type filter narrows the result.
func (s *DNSRecordService) ListByDomain(ctx context.Context, domainID string, limit int, cursor, recordType string) ([]model.DNSRecord, bool, error) {
	query := `SELECT ` + dnsRecordColumns + ` FROM dns_records WHERE domain_id = $1`
	args := []any{domainID}
	argIdx := 2

	if recordType != "" {
		query += fmt.Sprintf(` AND type = $%d`, argIdx)
		args = append(args, recordType)
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
		return nil, false, fmt.Errorf("list DNS records for domain %s: %w", domainID, err)
	}
	defer rows.Close()

	var records []model.DNSRecord
	for rows.Next() {
		rec, err := scanDNSRecord(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan DNS record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate DNS records: %w", err)
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}
	return records, hasMore, nil
}

func (s *DNSRecordService) Update(ctx context.Context, rec *model.DNSRecord) error {
	_, err := s.db.Exec(ctx,
		`UPDATE dns_records SET name = $1, content = $2, ttl = $3, priority = $4, updated_at = now()
		 WHERE id = $5`,
		rec.Name, rec.Content, rec.TTL, rec.Priority, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update DNS record %s: %w", rec.ID, err)
	}
	return nil
}

func (s *DNSRecordService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM dns_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete DNS record %s: %w", id, err)
	}
	return nil
}
