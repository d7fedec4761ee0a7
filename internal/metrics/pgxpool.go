package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPoolMetrics exposes pgx connection pool statistics under the
// panel_db namespace.
func RegisterPoolMetrics(pool *pgxpool.Pool) {
	gauges := []struct {
		name string
		help string
		stat func(*pgxpool.Stat) float64
	}{
		{"acquired_conns", "Connections currently checked out of the pool",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }},
		{"idle_conns", "Connections sitting idle in the pool",
			func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }},
		{"total_conns", "Connections currently open, acquired or idle",
			func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }},
		{"max_conns", "Configured pool ceiling",
			func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }},
		{"empty_acquire_count", "Acquires that had to wait for a free connection",
			func(s *pgxpool.Stat) float64 { return float64(s.EmptyAcquireCount()) }},
	}

	for _, g := range gauges {
		stat := g.stat
		prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "panel",
			Subsystem: "db",
			Name:      g.name,
			Help:      g.help,
		}, func() float64 {
			return stat(pool.Stat())
		}))
	}
}
