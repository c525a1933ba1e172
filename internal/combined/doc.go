// Package combined holds benchmarks that put several components together:
// a queue, a stop signal and a progress trigger, polled the way a pipeline
// consumer polls them.
//
// These benchmarks are more representative of real-world performance
// than isolated micro-benchmarks, as they capture the cumulative cost
// and any interactions between components.
package combined
