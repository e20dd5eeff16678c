// Package objstore is the in-memory, concurrency-safe store for payloads
// passed by reference: serialized arrays and objects that travel as an id
// token in the invocation instead of inline.
//
// Properties:
//   - sharded map with RW mutexes (256 shards by default)
//   - values copied on Set and Get by default; GetNoCopy for the hot path
//   - atomic counters for metrics
//   - optional cap on the total stored bytes (Options.MaxBytes)
package objstore
