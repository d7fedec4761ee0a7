package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/model"
)

// DatabaseService manages provisioned databases.
type DatabaseService struct {
	db DB
}

func NewDatabaseService(db DB) *DatabaseService {
	return &DatabaseService{db: db}
}

const databaseColumns = `id, name, engine, size_bytes, status, status_message, created_at, updated_at`

func scanDatabase(row interface{ Scan(dest ...any) error }) (model.Database, error) {
	var d model.Database
	err := row.Scan(&d.ID, &d.Name, &d.Engine, &d.SizeBytes,
		&d.Status, &d.StatusMessage, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (s *DatabaseService) Create(ctx context.Context, database *model.Database) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM databases WHERE name = $1)", database.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database name: %w", err)
	}
	if exists {
		return fmt.Errorf("database %s already exists: %w", database.Name, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO databases (id, name, engine, size_bytes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		database.ID, database.Name, database.Engine, database.SizeBytes,
		database.Status, database.CreatedAt, database.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert database: %w", err)
	}
	return nil
}

func (s *DatabaseService) GetByID(ctx context.Context, id string) (*model.Database, error) {
	d, err := scanDatabase(s.db.QueryRow(ctx,
		`SELECT `+databaseColumns+` FROM databases WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get database %s: %w", id, err)
	}
	return &d, nil
}

func (s *DatabaseService) List(ctx context.Context, params request.ListParams) ([]model.Database, bool, error) {
	query := `SELECT ` + databaseColumns + ` FROM databases WHERE true`
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
	case "size_bytes":
		sortCol = "size_bytes"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	if params.Cursor != "" {
		query += keysetPredicate("databases", sortCol, order, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, sortCol, order, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list databases: %w", err)
	}
	defer rows.Close()

	var databases []model.Database
	for rows.Next() {
		d, err := scanDatabase(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan database: %w", err)
		}
		databases = append(databases, d)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate databases: %w", err)
	}

	hasMore := len(databases) > params.Limit
	if hasMore {
		databases = databases[:params.Limit]
	}
	return databases, hasMore, nil
}

// Delete removes the database. Users granted on it are detached, not removed.
func (s *DatabaseService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE database_users SET database_id = NULL, updated_at = now() WHERE database_id = $1", id)
	if err != nil {
		return fmt.Errorf("detach users from database %s: %w", id, err)
	}
	_, err = s.db.Exec(ctx, "DELETE FROM databases WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete database %s: %w", id, err)
	}
	return nil
}
