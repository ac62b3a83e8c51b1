package testutil

import (
	"context"
	"sync/atomic"

	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/cybertec-postgresql/orawatch/internal/spots"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
)

type MockTargetsReader struct {
	ToReturn targets.Configs
	ToErr    error
}

func (m *MockTargetsReader) GetTargets() (targets.Configs, error) {
	if m.ToErr != nil {
		return nil, m.ToErr
	}
	return m.ToReturn, nil
}

type MockSectionsReader struct {
	ToReturn sections.Sections
	ToErr    error
}

func (m *MockSectionsReader) GetSections() (sections.Sections, error) {
	if m.ToErr != nil {
		return nil, m.ToErr
	}
	return m.ToReturn, nil
}

// FakeSpot is an Opened returning canned instances or an error
type FakeSpot struct {
	Name      string
	T         targets.Target
	Instances spots.WorkInstances
	Err       error
	// Filter receives the filter of the last discovery call
	Filter        []targets.InstanceName
	DiscoverCalls atomic.Int32
	CloseCalls    atomic.Int32
}

func NewFakeSpot(name string, t targets.Target, infos ...*sections.InstanceInfo) *FakeSpot {
	s := &FakeSpot{Name: name, T: t, Instances: spots.NewWorkInstances()}
	for _, info := range infos {
		s.Instances.Add(info.Name, info)
	}
	return s
}

func (s *FakeSpot) Target() targets.Target {
	return s.T
}

func (s *FakeSpot) DiscoverInstances(_ context.Context, filter []targets.InstanceName) (spots.WorkInstances, error) {
	s.DiscoverCalls.Add(1)
	s.Filter = filter
	if s.Err != nil {
		return spots.NewWorkInstances(), s.Err
	}
	return s.Instances.Filter(filter), nil
}

func (s *FakeSpot) Close() spots.Closed {
	s.CloseCalls.Add(1)
	return spots.Closed{Name: s.Name, Target: s.T}
}
