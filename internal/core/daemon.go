package core

import (
	"context"
	"fmt"
	"time"

	"github.com/edvin/panel/internal/model"
)

// DaemonService exposes the managed system daemons.
type DaemonService struct {
	db DB
}

func NewDaemonService(db DB) *DaemonService {
	return &DaemonService{db: db}
}

const daemonColumns = `id, name, kind, enabled, status, status_message, restarted_at, created_at, updated_at`

func scanDaemon(row interface{ Scan(dest ...any) error }) (model.Daemon, error) {
	var d model.Daemon
	err := row.Scan(&d.ID, &d.Name, &d.Kind, &d.Enabled, &d.Status, &d.StatusMessage,
		&d.RestartedAt, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// restartGrace is how long a daemon stays in restarting before reads treat
// the restart as finished. Restarts are handed to the init system without a
// completion callback, so reads settle the status themselves.
const restartGrace = 15 * time.Second

func (s *DaemonService) settle(ctx context.Context, d *model.Daemon) error {
	if d.Status != model.StatusRestarting || d.RestartedAt == nil {
		return nil
	}
	if time.Since(*d.RestartedAt) < restartGrace {
		return nil
	}
	_, err := s.db.Exec(ctx,
		"UPDATE daemons SET status = $2, updated_at = now() WHERE id = $1 AND status = $3",
		d.ID, model.StatusActive, model.StatusRestarting)
	if err != nil {
		return fmt.Errorf("settle daemon %s: %w", d.ID, err)
	}
	d.Status = model.StatusActive
	return nil
}

func (s *DaemonService) GetByID(ctx context.Context, id string) (*model.Daemon, error) {
	d, err := scanDaemon(s.db.QueryRow(ctx,
		`SELECT `+daemonColumns+` FROM daemons WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get daemon %s: %w", id, err)
	}
	if err := s.settle(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DaemonService) List(ctx context.Context) ([]model.Daemon, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+daemonColumns+` FROM daemons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list daemons: %w", err)
	}
	defer rows.Close()

	var daemons []model.Daemon
	for rows.Next() {
		d, err := scanDaemon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daemon: %w", err)
		}
		daemons = append(daemons, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daemons: %w", err)
	}
	for i := range daemons {
		if err := s.settle(ctx, &daemons[i]); err != nil {
			return nil, err
		}
	}
	return daemons, nil
}

// Restart marks the daemon restarting. A disabled daemon cannot be restarted,
// and a restart already in flight is not stacked.
func (s *DaemonService) Restart(ctx context.Context, id string) error {
	daemon, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !daemon.Enabled {
		return fmt.Errorf("daemon %s is disabled", daemon.Name)
	}
	if daemon.Status == model.StatusRestarting {
		return fmt.Errorf("daemon %s is already restarting: %w", daemon.Name, ErrConflict)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE daemons SET status = $2, restarted_at = now(), updated_at = now() WHERE id = $1`,
		id, model.StatusRestarting)
	if err != nil {
		return fmt.Errorf("restart daemon %s: %w", id, err)
	}
	return nil
}

func (s *DaemonService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := s.db.Exec(ctx,
		"UPDATE daemons SET enabled = $2, updated_at = now() WHERE id = $1", id, enabled)
	if err != nil {
		return fmt.Errorf("set daemon enabled %s: %w", id, err)
	}
	return nil
}
