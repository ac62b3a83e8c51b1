package spots

import (
	"iter"
	"maps"
	"slices"

	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

// WorkInstances maps discovered instance names to their info, iterated in name order.
// A nil info means the instance was expected but nothing is known about it.
type WorkInstances struct {
	infos map[targets.InstanceName]*sections.InstanceInfo
}

func NewWorkInstances() WorkInstances {
	return WorkInstances{infos: make(map[targets.InstanceName]*sections.InstanceInfo)}
}

func (w *WorkInstances) Add(name targets.InstanceName, info *sections.InstanceInfo) {
	if w.infos == nil {
		w.infos = make(map[targets.InstanceName]*sections.InstanceInfo)
	}
	w.infos[name] = info
}

func (w WorkInstances) Len() int {
	return len(w.infos)
}

func (w WorkInstances) Names() []targets.InstanceName {
	return slices.Sorted(maps.Keys(w.infos))
}

// Info returns the info of an instance, nil if the instance is unknown or has no info
func (w WorkInstances) Info(name targets.InstanceName) *sections.InstanceInfo {
	return w.infos[name]
}

// All iterates over instances in name order
func (w WorkInstances) All() iter.Seq2[targets.InstanceName, *sections.InstanceInfo] {
	return func(yield func(targets.InstanceName, *sections.InstanceInfo) bool) {
		for _, name := range w.Names() {
			if !yield(name, w.infos[name]) {
				return
			}
		}
	}
}

// Filter keeps the listed instances only. Listed instances not discovered are
// kept without info.
func (w WorkInstances) Filter(names []targets.InstanceName) WorkInstances {
	if len(names) == 0 {
		return w
	}
	res := NewWorkInstances()
	for _, name := range names {
		res.Add(name, w.infos[name])
	}
	return res
}
