package agent

import (
	"context"
	"errors"
	"time"

	"github.com/cybertec-postgresql/orawatch/internal/cmdopts"
	"github.com/cybertec-postgresql/orawatch/internal/discovery"
	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/spots"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// Opener opens spots for the configured targets
type Opener interface {
	OpenAll(ctx context.Context, cs targets.Configs, maxParallel int) ([]spots.Opened, error)
}

// Agent is responsible for turning configured targets into published work lists
type Agent struct {
	*cmdopts.Options
	logger log.Logger
	opener Opener
}

func New(ctx context.Context, opts *cmdopts.Options) *Agent {
	return &Agent{
		Options: opts,
		logger:  log.GetLogger(ctx),
		opener:  spots.NewConnector(opts.Targets),
	}
}

// WithOpener replaces the go-ora connector
func (a *Agent) WithOpener(o Opener) *Agent {
	a.opener = o
	return a
}

// Run plans once, or every --interval until ctx is done, and returns the process exit code.
// Configuration errors of the first pass stop the agent, later ones are only logged.
func (a *Agent) Run(ctx context.Context) int32 {
	code := a.plan(ctx)
	if a.Planner.Interval <= 0 || code == cmdopts.ExitCodeConfigError {
		return code
	}
	for {
		select {
		case <-ctx.Done():
			return cmdopts.ExitCodeUserCancel
		case <-time.After(a.Planner.Interval):
		}
		if code = a.plan(ctx); code != cmdopts.ExitCodeOK && ctx.Err() == nil {
			a.logger.WithField("code", code).Warning("planning pass failed")
		}
	}
}

func (a *Agent) plan(ctx context.Context) int32 {
	cs, ss, params, err := a.loadConfig()
	if err != nil {
		a.logger.Error(err)
		return cmdopts.ExitCodeConfigError
	}
	if len(cs) == 0 {
		a.logger.Warning("no enabled targets found")
	}
	if a.Planner.CheckLocal {
		a.checkLocal(ctx, cs)
	}

	opened, err := a.opener.OpenAll(ctx, cs, a.Planner.MaxParallelSpots)
	if err != nil {
		a.logger.WithError(err).Warning("some targets could not be opened")
	}
	a.logger.WithField("opened", len(opened)).WithField("configured", len(cs)).Info("spots opened")

	res := planner.New(a.Planner, ss, params).Plan(ctx, opened)
	res.Failures = append(res.Failures, connectFailures(err)...)
	a.logger.WithField("works", len(res.Works)).
		WithField("failures", len(res.Failures)).
		WithField("queries", res.QueryCount()).
		Info("work planned")

	if err = a.SinksWriter.Write(res); err != nil {
		a.logger.WithError(err).Error("cannot publish results")
		return cmdopts.ExitCodeCmdError
	}
	switch {
	case ctx.Err() != nil:
		return cmdopts.ExitCodeUserCancel
	case len(cs) > 0 && len(opened) == 0:
		return cmdopts.ExitCodeConnectError
	}
	return cmdopts.ExitCodeOK
}

func (a *Agent) loadConfig() (cs targets.Configs, ss sections.Sections, params []sections.BindParam, err error) {
	if cs, err = a.TargetsReader.GetTargets(); err != nil {
		return
	}
	cs = cs.Enabled(a.Targets.Groups)
	if ss, err = a.SectionsReader.GetSections(); err != nil {
		return
	}
	if ss, err = ss.Select(a.Sections.Names); err != nil {
		return
	}
	params, err = a.Sections.BindParams()
	return
}

// checkLocal warns about targets expected on this host without a running PMON process
func (a *Agent) checkLocal(ctx context.Context, cs targets.Configs) {
	scanner, err := a.Scanner("")
	if err != nil {
		a.logger.WithError(err).Error("cannot check local instances")
		return
	}
	missing, unexpected := discovery.ReconcileTargets(cs.Targets(), scanner.FindSIDs(ctx))
	for _, sid := range missing {
		a.logger.WithField("sid", sid).Warning("no PMON process found for configured instance")
	}
	for _, sid := range unexpected {
		a.logger.WithField("sid", sid).Info("running instance is not configured")
	}
}

// connectFailures reports targets that could not be opened the same way as failed discoveries
func connectFailures(err error) (failures []planner.SpotFailure) {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var ce *spots.ConnectError
		if errors.As(e, &ce) {
			failures = append(failures, planner.SpotFailure{
				Spot: spots.Closed{Name: ce.Name, Target: ce.Target},
				Err:  &planner.DiscoveryError{Target: ce.Target, Err: ce.Err},
			})
		}
	}
	return
}
