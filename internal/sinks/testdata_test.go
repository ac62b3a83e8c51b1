package sinks

import (
	"context"
	"errors"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/spots"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

var ctx = log.WithLogger(context.Background(), log.NewNoopLogger())

func testResults() planner.Results {
	free := targets.Target{Host: "localhost", Port: 1521, Identity: targets.Descriptor{ServiceName: "FREE"}}
	legacy := targets.Target{Host: "legacy", Port: 1521, Identity: targets.StandaloneSid{Sid: "ORCL"}}
	return planner.Results{
		Works: []planner.SpotWork{{
			Spot: spots.Closed{Name: "free", Target: free},
			Instances: []planner.InstanceWork{{
				Instance: "FREE",
				Items: []planner.WorkItem{
					{Header: "<<<oracle_instance:sep(124)>>>", Queries: []sections.Query{{SQL: "SELECT 1 FROM dual\n"}}},
					{Header: "<<<oracle_locks:sep(124)>>>", Queries: []sections.Query{
						{SQL: "SELECT :lock_threshold FROM dual", Params: []sections.BindParam{{Name: "lock_threshold", Value: "60"}}},
						{SQL: "SELECT 2 FROM dual"},
					}},
				},
			}},
		}},
		Failures: []planner.SpotFailure{{
			Spot: spots.Closed{Name: "legacy", Target: legacy},
			Err:  &planner.DiscoveryError{Target: legacy, Err: errors.New("OCI Error: ORA-12541: TNS:no listener")},
		}},
	}
}
