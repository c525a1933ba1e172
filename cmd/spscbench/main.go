// Command spscbench pushes items through the SPSC queues and reports
// throughput, allocation and poll-loop costs.
//
// Usage:
//
//	go run ./cmd/spscbench throughput --items 10000000
//	go run ./cmd/spscbench compare --items 1000000 --size 1024
//	go run ./cmd/spscbench pollcost --items 10000000
//
// Every flag can also be set through a SPSCBENCH_* environment variable or a
// config file given with --config.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
