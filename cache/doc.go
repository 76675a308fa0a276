// Package cache provides an in-process response cache with two
// independent invalidation triggers: TTL expiry and dependency drift.
//
// It provides a Store interface with a memory implementation, a
// deterministic integer key deriver, dependency snapshots compared by
// structural equality, and TTL policies.
package cache
