package planner

import (
	"context"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/spots"
	"github.com/sourcegraph/conc/pool"
)

const defaultMaxParallelSpots = 8

type Planner struct {
	sections sections.Sections
	params   []sections.BindParam
	opts     CmdOpts
}

func New(opts CmdOpts, ss sections.Sections, params []sections.BindParam) *Planner {
	if opts.MaxParallelSpots < 1 {
		opts.MaxParallelSpots = defaultMaxParallelSpots
	}
	return &Planner{
		sections: ss,
		params:   params,
		opts:     opts,
	}
}

// MakeSpotWorkResults plans all spots with every discovered instance
func MakeSpotWorkResults(ctx context.Context, opened []spots.Opened, ss sections.Sections, params []sections.BindParam) Results {
	return New(CmdOpts{}, ss, params).Plan(ctx, opened)
}

type outcome struct {
	work    *SpotWork
	failure *SpotFailure
}

// Plan discovers and closes every spot, then matches sections against the discovered
// instances. It never fails as a whole, failing spots are reported in Results.Failures.
func (p *Planner) Plan(ctx context.Context, opened []spots.Opened) (res Results) {
	outcomes := make([]outcome, len(opened))
	wp := pool.New().WithMaxGoroutines(p.opts.MaxParallelSpots)
	for i, spot := range opened {
		wp.Go(func() {
			outcomes[i] = p.planSpot(ctx, spot)
		})
	}
	wp.Wait()
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			res.Failures = append(res.Failures, *o.failure)
		case o.work != nil:
			res.Works = append(res.Works, *o.work)
		}
	}
	return
}

func (p *Planner) planSpot(ctx context.Context, spot spots.Opened) outcome {
	logger := log.GetLogger(ctx).WithField("target", spot.Target().DisplayName())
	instances, err := spot.DiscoverInstances(ctx, p.opts.InstanceNames())
	closed := spot.Close()
	if err != nil {
		logger.WithError(err).Error("failed to get instances for spot")
		return outcome{failure: &SpotFailure{
			Spot: closed,
			Err:  &DiscoveryError{Target: closed.Target, Err: err},
		}}
	}
	work := &SpotWork{Spot: closed}
	for name, info := range instances.All() {
		if info == nil {
			logger.WithField("instance", name).Warning("no info found for instance")
			continue
		}
		work.Instances = append(work.Instances, InstanceWork{
			Instance: name,
			Items:    p.instanceItems(logger.WithField("instance", name), *info),
		})
	}
	return outcome{work: work}
}

func (p *Planner) instanceItems(logger log.Logger, info sections.InstanceInfo) (items []WorkItem) {
	for _, s := range p.sections {
		if !info.IsSuitableAffinity(s.Affinity) {
			logger.WithField("section", s.Name).Debug("skip section with not suitable affinity")
			continue
		}
		if queries := s.FindQueries(info, p.params); len(queries) > 0 {
			items = append(items, WorkItem{Queries: queries, Header: s.WorkHeader()})
		}
	}
	return
}
