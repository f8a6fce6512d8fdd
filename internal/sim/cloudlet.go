// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"time"

	"github.com/petenewcomb/rebal-go"
)

type Status int

const (
	StatusCreated Status = iota
	StatusQueued
	StatusInExec
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "CREATED"
	case StatusQueued:
		return "QUEUED"
	case StatusInExec:
		return "INEXEC"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// A Cloudlet is a unit of work submitted by a broker. Its id is unique only
// within the owning broker. Cloudlet implements [rebal.Task]; everything other
// than the resource assignment is fixed once the simulation has run.
type Cloudlet struct {
	id       int
	user     int
	length   int64
	resource rebal.ResourceID
	vm       int
	status   Status
	start    time.Duration
	finish   time.Duration
}

// NewCloudlet creates an unsubmitted cloudlet of the given length in million
// instructions.
func NewCloudlet(id, user int, length int64) *Cloudlet {
	return &Cloudlet{
		id:     id,
		user:   user,
		length: length,
		vm:     -1,
	}
}

// NewPlacedCloudlet creates a cloudlet that claims to have already run
// successfully on resource. It is meant for tests that need a batch without
// running a simulation.
func NewPlacedCloudlet(id, user int, resource rebal.ResourceID) *Cloudlet {
	return &Cloudlet{
		id:       id,
		user:     user,
		resource: resource,
		vm:       -1,
		status:   StatusSuccess,
	}
}

func (c *Cloudlet) ID() int { return c.id }
func (c *Cloudlet) Resource() rebal.ResourceID { return c.resource }
func (c *Cloudlet) SetResource(id rebal.ResourceID) { c.resource = id }

func (c *Cloudlet) User() int { return c.user }
func (c *Cloudlet) Length() int64 { return c.length }
func (c *Cloudlet) VMID() int { return c.vm }
func (c *Cloudlet) Status() Status { return c.status }
func (c *Cloudlet) ExecStartTime() time.Duration { return c.start }
func (c *Cloudlet) FinishTime() time.Duration { return c.finish }

// ActualCPUTime is the time the cloudlet spent executing.
func (c *Cloudlet) ActualCPUTime() time.Duration {
	if c.status != StatusSuccess {
		return 0
	}
	return c.finish - c.start
}

func (c *Cloudlet) String() string {
	return fmt.Sprintf("Cloudlet#%d(user=%d)", c.id, c.user)
}

var _ rebal.Task = (*Cloudlet)(nil)
