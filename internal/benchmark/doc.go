// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds the benchmarks used for PGO profile generation.
// They cover the hot paths of shlit:
//   - input decoding for every document format
//   - CUE configuration loading
//   - literal encoding in both dialects
//   - virtual and native round trips
//
// To generate a profile, run:
//
//	go test -run='^$' -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
