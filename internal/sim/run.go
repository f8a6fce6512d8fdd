// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"cmp"
	"time"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
	"github.com/petenewcomb/rebal-go"
)

// A Datacenter hosts VMs on a fixed set of hosts. Its id is the resource id
// that cloudlets running on its VMs report.
type Datacenter struct {
	ID    rebal.ResourceID
	Name  string
	hosts []*host
	VMs   []*VM
}

type host struct {
	freePEs int
	freeRAM int
	mips    int
}

// place puts vm on the host with the most free PEs that can take it.
func (dc *Datacenter) place(vm *VM) bool {
	var best *host
	for _, h := range dc.hosts {
		if h.freePEs < vm.pes || h.freeRAM < vm.ram || h.mips < vm.mips {
			continue
		}
		if best == nil || h.freePEs > best.freePEs {
			best = h
		}
	}
	if best == nil {
		return false
	}
	best.freePEs -= vm.pes
	best.freeRAM -= vm.ram
	vm.Datacenter = dc.ID
	dc.VMs = append(dc.VMs, vm)
	return true
}

// A VM executes its bound cloudlets one at a time in the order they were
// submitted.
type VM struct {
	ID         int
	User       int
	Datacenter rebal.ResourceID
	mips       int
	pes        int
	ram        int
	queue      deque.Deque[*Cloudlet]
	running    *Cloudlet
}

// A Broker owns VMs and cloudlets on behalf of one user and collects the
// cloudlets back as they complete.
type Broker struct {
	ID        int
	User      int
	Name      string
	VMs       []*VM
	Cloudlets []*Cloudlet
	// Received lists completed cloudlets in completion order.
	Received []*Cloudlet
	// Unplaced counts requested VMs that no datacenter had room for.
	Unplaced int
}

// Result is the state of a simulation after it has run to completion.
type Result struct {
	Datacenters []*Datacenter
	// Brokers are listed in the order they were configured, which is also the
	// order the rebalancer visits their cloudlets in.
	Brokers  []*Broker
	Space    *rebal.Space
	Duration time.Duration
}

// Batch concatenates the brokers' received lists in broker order.
func (r *Result) Batch() *rebal.Batch {
	b := &rebal.Batch{}
	for _, br := range r.Brokers {
		b.Append(rebal.Group(br.Received))
	}
	return b
}

type event struct {
	Time time.Duration
	Seq  int
	Func func()
}

func (a *event) Cmp(b *event) int {
	if c := cmp.Compare(a.Time, b.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

type simulation struct {
	now    time.Duration
	seq    int
	events heap.Heap[event, heap.Min]
}

func (s *simulation) schedule(at time.Duration, fn func()) {
	s.seq++
	heap.PushOrderable(&s.events, event{Time: at, Seq: s.seq, Func: fn})
}

func (s *simulation) run() {
	for {
		ev, ok := heap.PopOrderable(&s.events)
		if !ok {
			return
		}
		s.now = ev.Time
		ev.Func()
	}
}

// Run builds the datacenters and brokers described by config, places VMs,
// submits every broker's cloudlets and advances simulated time until all of
// them have completed. Cloudlets of a broker that got no VMs are never
// submitted and stay in [StatusCreated].
func Run(config *Config) (*Result, error) {
	if config == nil {
		config = &DefaultConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	nextID := config.FirstEntityID
	ids := make([]rebal.ResourceID, len(config.Datacenters))
	for i, dcc := range config.Datacenters {
		dc := &Datacenter{ID: rebal.ResourceID(nextID), Name: dcc.Name}
		for _, hc := range dcc.Hosts {
			dc.hosts = append(dc.hosts, &host{freePEs: hc.PEs, freeRAM: hc.RAM, mips: hc.MIPS})
		}
		ids[i] = dc.ID
		res.Datacenters = append(res.Datacenters, dc)
		nextID++
	}
	space, err := rebal.NewSpace(ids...)
	if err != nil {
		return nil, err
	}
	res.Space = space

	for i, bc := range config.Brokers {
		br := &Broker{ID: nextID, User: i + 1, Name: bc.Name}
		nextID++
		for v := range bc.VMCount {
			vm := &VM{ID: v, User: br.User, mips: bc.VM.MIPS, pes: bc.VM.PEs, ram: bc.VM.RAM}
			placed := false
			for _, dc := range res.Datacenters {
				if dc.place(vm) {
					placed = true
					break
				}
			}
			if placed {
				br.VMs = append(br.VMs, vm)
			} else {
				br.Unplaced++
			}
		}
		for c := range bc.CloudletCount {
			br.Cloudlets = append(br.Cloudlets, NewCloudlet(c, br.User, bc.CloudletLength))
		}
		res.Brokers = append(res.Brokers, br)
	}

	s := &simulation{}
	var start func(vm *VM)
	finish := func(vm *VM, br *Broker, c *Cloudlet) {
		c.status = StatusSuccess
		c.finish = s.now
		br.Received = append(br.Received, c)
		vm.running = nil
		start(vm)
	}
	brokerOf := func(user int) *Broker {
		return res.Brokers[user-1]
	}
	start = func(vm *VM) {
		if vm.running != nil || vm.queue.Len() == 0 {
			return
		}
		c := vm.queue.PopFront()
		vm.running = c
		c.status = StatusInExec
		c.start = s.now
		s.schedule(s.now+execTime(c.length, vm), func() {
			finish(vm, brokerOf(vm.User), c)
		})
	}

	for _, br := range res.Brokers {
		if len(br.VMs) == 0 {
			continue
		}
		for i, c := range br.Cloudlets {
			vm := br.VMs[i%len(br.VMs)]
			s.schedule(config.SubmitDelay, func() {
				c.vm = vm.ID
				c.resource = vm.Datacenter
				c.status = StatusQueued
				vm.queue.PushBack(c)
				start(vm)
			})
		}
	}

	s.run()
	res.Duration = s.now
	return res, nil
}

func execTime(length int64, vm *VM) time.Duration {
	return time.Duration(float64(length) / float64(vm.mips*vm.pes) * float64(time.Second))
}
