// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package report renders simulation results and rebalancing outcomes as
// plain-text tables and load charts.
package report
