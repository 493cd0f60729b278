// Command btsearch solves degree-bounded bottleneck spanning tree and bottleneck
// travelling salesman instances by threshold search over a SAT oracle.
//
//	btsearch random -n 30 > pts.yaml
//	btsearch solve pts.yaml --variant cycle --strategy binary
//	btsearch bench --start 10 --step 5 --time-limit 30s
package main

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
)

func main() {
	// An interrupt stops the search, which then reports its best solution.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
