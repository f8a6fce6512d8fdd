// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"time"

	"github.com/petenewcomb/rebal-go/internal/cerr"
)

const ErrInvalidConfig = cerr.Error("invalid simulation config")

// DefaultConfig reproduces the classic three-datacenter, three-broker
// scenario: each datacenter has a quad-core and a dual-core host, and the
// brokers ask for 4, 3 and 6 single-core VMs running 6, 5 and 8 cloudlets
// respectively.
var DefaultConfig = Config{
	FirstEntityID: 2,
	SubmitDelay:   100 * time.Millisecond,
	Datacenters: []DatacenterConfig{
		{Name: "Datacenter_0", Hosts: defaultHosts},
		{Name: "Datacenter_1", Hosts: defaultHosts},
		{Name: "Datacenter_2", Hosts: defaultHosts},
	},
	Brokers: []BrokerConfig{
		{Name: "Broker3", VMCount: 4, VM: defaultVM, CloudletCount: 6, CloudletLength: 1000},
		{Name: "Broker2", VMCount: 3, VM: defaultVM, CloudletCount: 5, CloudletLength: 1000},
		{Name: "Broker1", VMCount: 6, VM: defaultVM, CloudletCount: 8, CloudletLength: 1000},
	},
}

var defaultHosts = []HostConfig{
	{PEs: 4, MIPS: 1000, RAM: 2048},
	{PEs: 2, MIPS: 1000, RAM: 2048},
}

var defaultVM = VMConfig{MIPS: 1000, PEs: 1, RAM: 512}

type Config struct {
	// FirstEntityID is the id given to the first datacenter. Datacenters are
	// numbered consecutively from it, followed by the brokers.
	FirstEntityID int `yaml:"first_entity_id"`

	// SubmitDelay is the simulated time at which brokers submit their
	// cloudlets.
	SubmitDelay time.Duration `yaml:"submit_delay"`

	Datacenters []DatacenterConfig `yaml:"datacenters"`
	Brokers     []BrokerConfig     `yaml:"brokers"`
}

type DatacenterConfig struct {
	Name  string       `yaml:"name"`
	Hosts []HostConfig `yaml:"hosts"`
}

type HostConfig struct {
	PEs  int `yaml:"pes"`
	MIPS int `yaml:"mips"`
	RAM  int `yaml:"ram"`
}

type VMConfig struct {
	MIPS int `yaml:"mips"`
	PEs  int `yaml:"pes"`
	RAM  int `yaml:"ram"`
}

type BrokerConfig struct {
	Name           string   `yaml:"name"`
	VMCount        int      `yaml:"vm_count"`
	VM             VMConfig `yaml:"vm"`
	CloudletCount  int      `yaml:"cloudlet_count"`
	CloudletLength int64    `yaml:"cloudlet_length"`
}

// Validate checks that the config describes a runnable simulation.
func (c *Config) Validate() error {
	if len(c.Datacenters) == 0 {
		return ErrInvalidConfig.With("no datacenters")
	}
	if c.SubmitDelay < 0 {
		return ErrInvalidConfig.With("negative submit delay %v", c.SubmitDelay)
	}
	for i, dc := range c.Datacenters {
		for j, h := range dc.Hosts {
			if h.PEs <= 0 || h.MIPS <= 0 || h.RAM < 0 {
				return ErrInvalidConfig.With("datacenter %d (%s) host %d: %+v", i, dc.Name, j, h)
			}
		}
	}
	for i, b := range c.Brokers {
		if b.VMCount < 0 || b.CloudletCount < 0 {
			return ErrInvalidConfig.With("broker %d (%s): negative count", i, b.Name)
		}
		if b.VMCount > 0 && (b.VM.PEs <= 0 || b.VM.MIPS <= 0 || b.VM.RAM < 0) {
			return ErrInvalidConfig.With("broker %d (%s) vm: %+v", i, b.Name, b.VM)
		}
		if b.CloudletLength <= 0 && b.CloudletCount > 0 {
			return ErrInvalidConfig.With("broker %d (%s): cloudlet length %d", i, b.Name, b.CloudletLength)
		}
	}
	return nil
}
