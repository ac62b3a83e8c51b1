package planner_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/spots"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
	"github.com/cybertec-postgresql/orawatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = testutil.TestContext

var testSections = sections.Sections{
	{Name: "instance", Affinity: sections.AffinityAll, SQLs: sections.SQLs{11: "SELECT 'instance' FROM dual"}},
	{Name: "tablespaces", Affinity: sections.AffinityDB, SQLs: sections.SQLs{11: "SELECT 'ts' FROM dual"}},
	{Name: "asm_diskgroup", Affinity: sections.AffinityASM, SQLs: sections.SQLs{11: "SELECT 'dg' FROM dual"}},
	{Name: "future", Affinity: sections.AffinityAll, SQLs: sections.SQLs{30: "SELECT 'future' FROM dual"}},
	{Name: "locks", Affinity: sections.AffinityDB, SQLs: sections.SQLs{11: "SELECT :lock_threshold FROM dual\n/\nSELECT 2 FROM dual"}},
}

func serviceTarget(service string) targets.Target {
	return targets.Target{Host: "localhost", Port: targets.DefaultPort, Identity: targets.Descriptor{ServiceName: targets.ServiceName(service)}}
}

func info(name, version string) *sections.InstanceInfo {
	return &sections.InstanceInfo{Name: targets.InstanceName(name), Version: version}
}

func headers(items []planner.WorkItem) (res []string) {
	for _, i := range items {
		res = append(res, i.Header)
	}
	return
}

func TestMakeSpotWorkResults(t *testing.T) {
	db := testutil.NewFakeSpot("db", serviceTarget("ORCL"), info("ORCL", "19.0.0.0.0"))
	asm := testutil.NewFakeSpot("asm", serviceTarget("+ASM"), info("+ASM", "19.0.0.0.0"))
	broken := testutil.NewFakeSpot("broken", targets.Target{Identity: targets.Alias{Alias: "prod_tns"}})
	broken.Err = errors.New("OCI Error: ORA-12154: TNS:could not resolve the connect identifier specified")

	params := []sections.BindParam{{Name: "lock_threshold", Value: "60"}}
	res := planner.MakeSpotWorkResults(ctx, []spots.Opened{db, broken, asm}, testSections, params)

	require.Len(t, res.Works, 2)
	require.Len(t, res.Failures, 1)

	assert.Equal(t, "db", res.Works[0].Spot.Name)
	require.Len(t, res.Works[0].Instances, 1)
	dbWork := res.Works[0].Instances[0]
	assert.EqualValues(t, "ORCL", dbWork.Instance)
	assert.Equal(t, []string{
		"<<<oracle_instance:sep(124)>>>",
		"<<<oracle_tablespaces:sep(124)>>>",
		"<<<oracle_locks:sep(124)>>>",
	}, headers(dbWork.Items))
	locks := dbWork.Items[2].Queries
	require.Len(t, locks, 2)
	assert.Equal(t, params, locks[0].Params)
	assert.Empty(t, locks[1].Params)

	assert.Equal(t, "asm", res.Works[1].Spot.Name)
	assert.Equal(t, []string{
		"<<<oracle_instance:sep(124)>>>",
		"<<<oracle_asm_diskgroup:sep(124)>>>",
	}, headers(res.Works[1].Instances[0].Items))

	failure := res.Failures[0]
	assert.Equal(t, "broken", failure.Spot.Name)
	assert.Equal(t, "REMOTE_INSTANCE_PROD_TNS|FAILURE|WARNING: ORA-12154: TNS:could not resolve the connect identifier specified", failure.Err.Error())
	assert.ErrorIs(t, failure.Err, broken.Err)
	var de *planner.DiscoveryError
	require.ErrorAs(t, failure.Err, &de)
	assert.Equal(t, broken.T, de.Target)

	for _, s := range []*testutil.FakeSpot{db, asm, broken} {
		assert.EqualValues(t, 1, s.DiscoverCalls.Load(), s.Name)
		assert.EqualValues(t, 1, s.CloseCalls.Load(), s.Name)
	}
	assert.Equal(t, 6, res.QueryCount())
}

func TestPlanSkipsInstancesWithoutInfo(t *testing.T) {
	spot := testutil.NewFakeSpot("rac", serviceTarget("RAC"), info("RAC1", "19.3.0.0.0"))
	spot.Instances.Add("RAC2", nil)

	res := planner.MakeSpotWorkResults(ctx, []spots.Opened{spot}, testSections, nil)
	require.Len(t, res.Works, 1)
	assert.Empty(t, res.Failures)
	require.Len(t, res.Works[0].Instances, 1)
	assert.EqualValues(t, "RAC1", res.Works[0].Instances[0].Instance)
}

func TestPlanInstanceWithoutQueries(t *testing.T) {
	spot := testutil.NewFakeSpot("old", serviceTarget("OLD"), info("OLD", "10.2.0.5.0"))
	res := planner.MakeSpotWorkResults(ctx, []spots.Opened{spot}, testSections, nil)
	require.Len(t, res.Works, 1)
	require.Len(t, res.Works[0].Instances, 1)
	assert.Empty(t, res.Works[0].Instances[0].Items)
}

func TestPlanEmpty(t *testing.T) {
	res := planner.MakeSpotWorkResults(ctx, nil, testSections, nil)
	assert.Empty(t, res.Works)
	assert.Empty(t, res.Failures)

	spot := testutil.NewFakeSpot("idle", serviceTarget("IDLE"))
	res = planner.MakeSpotWorkResults(ctx, []spots.Opened{spot}, testSections, nil)
	require.Len(t, res.Works, 1)
	assert.Empty(t, res.Works[0].Instances)
}

func TestPlanInstanceFilter(t *testing.T) {
	spot := testutil.NewFakeSpot("rac", serviceTarget("RAC"), info("RAC1", "19.0.0.0.0"), info("RAC2", "19.0.0.0.0"))
	p := planner.New(planner.CmdOpts{Instances: []string{"rac2"}}, testSections, nil)
	res := p.Plan(ctx, []spots.Opened{spot})
	assert.Equal(t, []targets.InstanceName{"RAC2"}, spot.Filter)
	require.Len(t, res.Works[0].Instances, 1)
	assert.EqualValues(t, "RAC2", res.Works[0].Instances[0].Instance)
}

func TestPlanKeepsInputOrder(t *testing.T) {
	const n = 50
	opened := make([]spots.Opened, 0, n)
	fakes := make([]*testutil.FakeSpot, 0, n)
	for i := range n {
		name := fmt.Sprintf("S%02d", i)
		s := testutil.NewFakeSpot(name, serviceTarget(name), info(name, "23.0.0.0.0"))
		if i%3 == 0 {
			s.Err = fmt.Errorf("ORA-01017: invalid credential for %s", name)
		}
		opened = append(opened, s)
		fakes = append(fakes, s)
	}
	res := planner.New(planner.CmdOpts{MaxParallelSpots: 4}, testSections, nil).Plan(ctx, opened)

	assert.Len(t, res.Works, n-17)
	assert.Len(t, res.Failures, 17)
	var works, failures []string
	for _, w := range res.Works {
		works = append(works, w.Spot.Name)
	}
	for _, f := range res.Failures {
		failures = append(failures, f.Spot.Name)
	}
	for i, s := range fakes {
		assert.EqualValues(t, 1, s.CloseCalls.Load())
		if i%3 == 0 {
			assert.Contains(t, failures, s.Name)
		} else {
			assert.Contains(t, works, s.Name)
		}
	}
	assert.IsIncreasing(t, works)
	assert.IsIncreasing(t, failures)
}

func TestDiscoveryErrorMessage(t *testing.T) {
	tests := []struct {
		target targets.Target
		err    error
		want   string
	}{
		{
			target: serviceTarget("free"),
			err:    errors.New("OCI Error: ORA-01017"),
			want:   "REMOTE_INSTANCE_FREE|FAILURE|WARNING: ORA-01017",
		},
		{
			target: targets.Target{Identity: targets.StandaloneSid{Sid: "orcl"}},
			err:    errors.New("OCI Error: first OCI Error: second"),
			want:   "REMOTE_INSTANCE_ORCL|FAILURE|WARNING: first second",
		},
		{
			target: targets.Target{},
			err:    errors.New("plain"),
			want:   "REMOTE_INSTANCE_UNDEFINED|FAILURE|WARNING: plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := &planner.DiscoveryError{Target: tt.target, Err: tt.err}
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}
