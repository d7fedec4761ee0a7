package core

import (
	"context"
	"fmt"

	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/crypto"
	"github.com/edvin/panel/internal/model"
)

// DatabaseUserService manages database users and their grants.
type DatabaseUserService struct {
	db DB
}

func NewDatabaseUserService(db DB) *DatabaseUserService {
	return &DatabaseUserService{db: db}
}

const databaseUserColumns = `id, database_id, username, privileges, status, created_at, updated_at`

func scanDatabaseUser(row interface{ Scan(dest ...any) error }) (model.DatabaseUser, error) {
	var u model.DatabaseUser
	err := row.Scan(&u.ID, &u.DatabaseID, &u.Username, &u.Privileges,
		&u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *DatabaseUserService) Create(ctx context.Context, user *model.DatabaseUser, password string) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM database_users WHERE username = $1)", user.Username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database username: %w", err)
	}
	if exists {
		return fmt.Errorf("database user %s already exists: %w", user.Username, ErrConflict)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash database password: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO database_users (id, database_id, username, password_hash, privileges, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.DatabaseID, user.Username, hash, user.Privileges,
		user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert database user: %w", err)
	}
	return nil
}

func (s *DatabaseUserService) GetByID(ctx context.Context, id string) (*model.DatabaseUser, error) {
	u, err := scanDatabaseUser(s.db.QueryRow(ctx,
		`SELECT `+databaseUserColumns+` FROM database_users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get database user %s: %w", id, err)
	}
	return &u, nil
}

func (s *DatabaseUserService) List(ctx context.Context, params request.ListParams) ([]model.DatabaseUser, bool, error) {
	query := `SELECT ` + databaseUserColumns + ` FROM database_users WHERE true`
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		query += fmt.Sprintf(` AND username ILIKE $%d`, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	sortCol := "created_at"
	switch params.Sort {
	case "username":
		sortCol = "username"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	if params.Cursor != "" {
		query += keysetPredicate("database_users", sortCol, order, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, sortCol, order, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list database users: %w", err)
	}
	defer rows.Close()

	var users []model.DatabaseUser
	for rows.Next() {
		u, err := scanDatabaseUser(rows)
		if err != nil {
			return nil, false, fmt.Errorf("scan database user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate database users: %w", err)
	}

	hasMore := len(users) > params.Limit
	if hasMore {
		users = users[:params.Limit]
	}
	return users, hasMore, nil
}

// Update changes the grant target and privilege set; the username is immutable.
func (s *DatabaseUserService) Update(ctx context.Context, id string, databaseID *string, privileges []string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE database_users SET database_id = $2, privileges = $3, updated_at = now() WHERE id = $1`,
		id, databaseID, privileges,
	)
	if err != nil {
		return fmt.Errorf("update database user %s: %w", id, err)
	}
	return nil
}

func (s *DatabaseUserService) SetPassword(ctx context.Context, id, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash database password: %w", err)
	}
	_, err = s.db.Exec(ctx,
		"UPDATE database_users SET password_hash = $2, updated_at = now() WHERE id = $1", id, hash)
	if err != nil {
		return fmt.Errorf("set database user password %s: %w", id, err)
	}
	return nil
}

func (s *DatabaseUserService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM database_users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete database user %s: %w", id, err)
	}
	return nil
}
