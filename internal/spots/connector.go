package spots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
	retry "github.com/sethvargo/go-retry"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/sourcegraph/conc/pool"
)

const driverName = "oracle"

var ErrUnsupported = errors.New("target cannot be expressed as a connection string")

// ConnectError is returned by OpenAll for every target that could not be opened
type ConnectError struct {
	Name   string
	Target targets.Target
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("cannot connect to %s (%s): %v", e.Name, e.Target, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

type OpenFunc func(driverName, dsn string) (DB, error)

func sqlOpen(driverName, dsn string) (DB, error) {
	return sql.Open(driverName, dsn)
}

// Connector opens spots using the go-ora driver
type Connector struct {
	opts       targets.CmdOpts
	retryDelay time.Duration
	open       OpenFunc
}

func NewConnector(opts targets.CmdOpts) *Connector {
	return &Connector{
		opts:       opts,
		retryDelay: 1 * time.Second,
		open:       sqlOpen,
	}
}

// WithOpenFunc replaces the driver, used in tests
func (c *Connector) WithOpenFunc(open OpenFunc, retryDelay time.Duration) *Connector {
	c.open = open
	c.retryDelay = retryDelay
	return c
}

// ConnectionString renders the target in the preferred grammar, falling back to
// the other one if the identity cannot be expressed in the preferred one
func (c *Connector) ConnectionString(ctx context.Context, t targets.Target) (string, error) {
	kind := c.opts.Kind()
	if s, ok := t.ConnectionString("", kind); ok {
		return s, nil
	}
	logger := log.GetLogger(ctx).WithField("target", t.DisplayName())
	if s, ok := t.ConnectionString("", kind.Other()); ok {
		logger.WithField("kind", kind.Other()).Debug("preferred connection string kind not supported, falling back")
		return s, nil
	}
	logger.Error("unsupported combination of target identity and connection string kind")
	return "", ErrUnsupported
}

// DSN builds the go-ora URL for the target
func (c *Connector) DSN(ctx context.Context, t targets.Target) (string, error) {
	connStr, err := c.ConnectionString(ctx, t)
	if err != nil {
		return "", err
	}
	options := map[string]string{}
	if c.opts.ConnectTimeout > 0 {
		options["TIMEOUT"] = strconv.Itoa(int(c.opts.ConnectTimeout.Seconds()))
	}
	if t.Auth.Role > "" {
		options["DBA PRIVILEGE"] = strings.ToUpper(t.Auth.Role)
	}
	return go_ora.BuildJDBC(t.Auth.Username, t.Auth.Password, connStr, options), nil
}

// Open connects to the target and checks the connection, retrying failed pings
func (c *Connector) Open(ctx context.Context, name string, t targets.Target) (Opened, error) {
	dsn, err := c.DSN(ctx, t)
	if err != nil {
		return nil, err
	}
	db, err := c.open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	logger := log.GetLogger(ctx).WithField("target", t.DisplayName())
	backoff := retry.WithMaxRetries(c.opts.ConnectRetries, retry.NewConstant(c.retryDelay))
	if err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := c.withTimeout(ctx)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			logger.WithError(err).Error("connection failed")
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug("connected")
	return NewSpot(ctx, name, t, db), nil
}

func (c *Connector) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.ConnectTimeout > 0 {
		return context.WithTimeout(ctx, c.opts.ConnectTimeout)
	}
	return context.WithCancel(ctx)
}

// OpenAll opens all configured targets concurrently. Targets that cannot be opened
// are reported as joined *ConnectError, the opened spots keep configuration order.
func (c *Connector) OpenAll(ctx context.Context, cs targets.Configs, maxParallel int) ([]Opened, error) {
	opened := make([]Opened, len(cs))
	errs := make([]error, len(cs))
	p := pool.New().WithMaxGoroutines(max(maxParallel, 1))
	for i, cfg := range cs {
		p.Go(func() {
			t := cfg.Target()
			spot, err := c.Open(ctx, cfg.Name, t)
			if err != nil {
				errs[i] = &ConnectError{Name: cfg.Name, Target: t, Err: err}
				return
			}
			opened[i] = spot
		})
	}
	p.Wait()
	res := make([]Opened, 0, len(cs))
	for _, spot := range opened {
		if spot != nil {
			res = append(res, spot)
		}
	}
	return res, errors.Join(errs...)
}
