package spots

import (
	"context"
	"database/sql"
	"sync"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// DB is the part of *sql.DB used by spots
type DB interface {
	PingContext(ctx context.Context) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Opened is a connected spot
type Opened interface {
	Target() targets.Target
	// DiscoverInstances lists running instances. When filter is not empty only the listed
	// instances are returned, the ones not running without info.
	DiscoverInstances(ctx context.Context, filter []targets.InstanceName) (WorkInstances, error)
	// Close releases the connection. It never fails, errors are logged.
	Close() Closed
}

// Closed is what remains of a spot after closing
type Closed struct {
	Name   string         `json:"name"`
	Target targets.Target `json:"-"`
}

func (c Closed) String() string {
	return c.Name
}

const sqlInstances = `SELECT instance_name, version, edition, host_name, status FROM gv$instance`

// Spot is an Opened backed by a database connection
type Spot struct {
	name   string
	target targets.Target
	db     DB
	logger log.Logger
	once   sync.Once
}

func NewSpot(ctx context.Context, name string, target targets.Target, db DB) *Spot {
	return &Spot{
		name:   name,
		target: target,
		db:     db,
		logger: log.GetLogger(ctx).WithField("spot", name),
	}
}

func (s *Spot) Target() targets.Target {
	return s.target
}

func (s *Spot) DiscoverInstances(ctx context.Context, filter []targets.InstanceName) (WorkInstances, error) {
	instances := NewWorkInstances()
	rows, err := s.db.QueryContext(ctx, sqlInstances)
	if err != nil {
		return instances, err
	}
	defer rows.Close()
	for rows.Next() {
		var name, version, host, status string
		var edition sql.NullString
		if err = rows.Scan(&name, &version, &edition, &host, &status); err != nil {
			return instances, err
		}
		info := &sections.InstanceInfo{
			Name:    targets.NewInstanceName(name),
			Version: version,
			Edition: edition.String,
			Host:    host,
			Status:  status,
		}
		instances.Add(info.Name, info)
	}
	if err = rows.Err(); err != nil {
		return instances, err
	}
	s.logger.WithField("instances", instances.Names()).Debug("instances discovered")
	return instances.Filter(filter), nil
}

func (s *Spot) Close() Closed {
	s.once.Do(func() {
		if err := s.db.Close(); err != nil {
			s.logger.WithError(err).Warning("cannot close connection")
		}
	})
	return Closed{Name: s.name, Target: s.target}
}
