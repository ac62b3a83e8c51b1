package planner

import (
	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/spots"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

type (
	// WorkItem is the set of queries of one section together with its header line
	WorkItem struct {
		Queries []sections.Query `json:"queries"`
		Header  string           `json:"header"`
	}

	InstanceWork struct {
		Instance targets.InstanceName `json:"instance"`
		Items    []WorkItem           `json:"items"`
	}

	SpotWork struct {
		Spot      spots.Closed   `json:"spot"`
		Instances []InstanceWork `json:"instances"`
	}

	SpotFailure struct {
		Spot spots.Closed `json:"spot"`
		Err  error        `json:"-"`
	}

	// Results partitions a batch of spots, every spot lands in exactly one of the lists
	Results struct {
		Works    []SpotWork    `json:"works"`
		Failures []SpotFailure `json:"failures"`
	}
)

// QueryCount returns the number of planned queries
func (r Results) QueryCount() (n int) {
	for _, w := range r.Works {
		for _, i := range w.Instances {
			for _, item := range i.Items {
				n += len(item.Queries)
			}
		}
	}
	return
}
