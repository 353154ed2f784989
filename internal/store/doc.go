// Package store persists harness runs in SQLite.
//
// A run groups the scenario results of one "ndview test" invocation:
//   - runs: one row per run, with pass/fail counts
//   - scenario_results: one row per scenario, with its canonical trace and
//     a domain-separated digest of it
//
// Ordering is logical. Every query orders by seq ASC and then by a binary
// string key, so listings are identical across machines and reruns.
// Writing the same scenario result twice for a run is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
