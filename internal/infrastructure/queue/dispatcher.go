package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/api/metrics"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes client-provisioning requests to a fixed set of workers
// using consistent hashing on the username, guaranteeing per-account
// ordering of link attempts.
type Dispatcher struct {
	workers []chan ports.LinkRequest
	linker  ports.AccountLinker
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, linker ports.AccountLinker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.LinkRequest, numWorkers),
		linker:  linker,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LinkRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a link request to the worker responsible for its username.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(req ports.LinkRequest) {
	d.workers[d.shardIndex(req.Username)] <- req
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LinkRequest) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ch:
			if !ok {
				return
			}
			// A failed link leaves the account unlinked; registration has
			// already succeeded from the caller's point of view.
			if err := d.linker.Link(ctx, req); err != nil {
				metrics.ClientLinksTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("username", req.Username).
					Int("worker_id", id).
					Msg("client provisioning failed, account left unlinked")
			} else {
				metrics.ClientLinksTotal.WithLabelValues("linked").Inc()
			}
		}
	}
}
