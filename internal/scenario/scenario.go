// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package scenario loads the description of a simulated platform together
// with the capacities and options used to rebalance it.
package scenario

import (
	"errors"
	"io"
	"os"
	"slices"

	"github.com/petenewcomb/rebal-go"
	"github.com/petenewcomb/rebal-go/internal/cerr"
	"github.com/petenewcomb/rebal-go/internal/sim"
	"gopkg.in/yaml.v3"
)

const ErrInvalidScenario = cerr.Error("invalid scenario")

// A Scenario is everything needed for one simulate-then-rebalance run.
type Scenario struct {
	Simulation sim.Config `yaml:"simulation"`

	// Capacities lists the target load of each datacenter, in the order the
	// datacenters are configured.
	Capacities []int `yaml:"capacities"`

	// CandidateOffset is passed through to [rebal.Config].
	CandidateOffset int `yaml:"candidate_offset"`
}

// Default returns the built-in scenario: the default simulation with a
// capacity of 10 per datacenter.
func Default() *Scenario {
	s := &Scenario{Simulation: cloneConfig(&sim.DefaultConfig)}
	s.Capacities = make([]int, len(s.Simulation.Datacenters))
	for i := range s.Capacities {
		s.Capacities[i] = 10
	}
	return s
}

// Load decodes a YAML scenario from r. Top-level fields absent from the
// document keep their values from [Default]; lists that are present replace
// the default lists entirely. Unknown fields are rejected.
func Load(r io.Reader) (*Scenario, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrInvalidScenario.With("decode: %v", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile is [Load] for the named file.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the simulation config and that there is exactly one
// capacity per datacenter.
func (s *Scenario) Validate() error {
	if err := s.Simulation.Validate(); err != nil {
		return err
	}
	if len(s.Capacities) != len(s.Simulation.Datacenters) {
		return ErrInvalidScenario.With("%d capacities for %d datacenters",
			len(s.Capacities), len(s.Simulation.Datacenters))
	}
	return nil
}

// Bind attaches the scenario's capacities to space, which must be the space
// of a simulation run from this scenario.
func (s *Scenario) Bind(space *rebal.Space) (rebal.Capacities, error) {
	return rebal.NewCapacities(space, s.Capacities...)
}

// Config builds a [rebal.Config] from base with the scenario's options
// applied. A nil base is treated as [rebal.DefaultConfig].
func (s *Scenario) Config(base *rebal.Config) *rebal.Config {
	if base == nil {
		base = &rebal.DefaultConfig
	}
	c := *base
	if s.CandidateOffset != 0 {
		c.CandidateOffset = s.CandidateOffset
	}
	return &c
}

func cloneConfig(c *sim.Config) sim.Config {
	out := *c
	out.Datacenters = slices.Clone(c.Datacenters)
	for i := range out.Datacenters {
		out.Datacenters[i].Hosts = slices.Clone(c.Datacenters[i].Hosts)
	}
	out.Brokers = slices.Clone(c.Brokers)
	return out
}
