// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim provides a small discrete-event stand-in for the cloud
// simulation platform that produces the task batches rebal operates on. It
// models datacenters whose hosts offer a fixed number of PEs, brokers that
// place VMs on the first datacenter with room and bind their cloudlets to
// those VMs round-robin, and VMs that execute their cloudlets one at a time in
// submission order. Each broker collects its cloudlets in completion order,
// which is the per-group order the rebalancer then consumes.
//
// The package also provides rapid generators for random resource spaces,
// capacities and grouped cloudlet batches used by property tests.
package sim
