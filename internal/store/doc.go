// Package store provides a SQLite-backed seed cache.
//
// A Store keeps the first DailySeed written under each cache key so that
// CreatedAt survives process restarts. It satisfies seed.Cache.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait on lock contention instead of failing
//   - Single open connection: SQLite allows one writer
//
// # First Write Wins
//
// PutIfAbsent inserts with ON CONFLICT DO NOTHING and then reads the row back,
// so racing processes converge on whichever insert landed first.
package store
