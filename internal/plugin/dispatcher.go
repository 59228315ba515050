package plugin

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// DefaultQueueSize is the number of pending events a Dispatcher buffers.
const DefaultQueueSize = 64

// Result reports the outcome of one hook run.
type Result struct {
	Plugin   string
	Event    string
	Response *Response
	Err      error
}

// Dispatcher delivers events to subscribed plugins on a background worker.
// Events are delivered in the order they were dispatched. Dispatch never
// blocks; events arriving while the queue is full are dropped.
type Dispatcher struct {
	manager  *Manager
	executor *Executor
	queue    chan *Request

	// OnResult, if set before Start, is called after every hook run.
	OnResult func(Result)

	mu      sync.Mutex
	closed  bool
	started bool
	dropped int
	done    chan struct{}
}

// NewDispatcher creates a Dispatcher. A non-positive queueSize uses DefaultQueueSize.
func NewDispatcher(manager *Manager, executor *Executor, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		manager:  manager,
		executor: executor,
		queue:    make(chan *Request, queueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the worker. Calling Start more than once has no effect.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.run()
}

// Dispatch queues event for every subscribed plugin. state is marshaled to
// JSON immediately so later mutation by the caller is not observed. It
// returns false when the event was dropped.
func (d *Dispatcher) Dispatch(event, matchID string, state any) bool {
	if len(d.manager.Subscribers(event)) == 0 {
		return true
	}

	raw, err := json.Marshal(state)
	if err != nil {
		log.Printf("plugin: marshal %s state: %v", event, err)
		return false
	}
	req := &Request{Event: event, MatchID: matchID, State: raw}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}

	select {
	case d.queue <- req:
		return true
	default:
		d.dropped++
		log.Printf("plugin: queue full, dropping %s", event)
		return false
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Close stops accepting events and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	started := d.started
	close(d.queue)
	d.mu.Unlock()

	if started {
		<-d.done
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for req := range d.queue {
		for _, p := range d.manager.Subscribers(req.Event) {
			resp, err := d.executor.Execute(context.Background(), p, req)
			if err != nil {
				log.Printf("plugin: %s on %s: %v", p.Manifest.Name, req.Event, err)
			} else if !resp.Success {
				log.Printf("plugin: %s on %s reported: %s", p.Manifest.Name, req.Event, resp.Error)
			}
			if d.OnResult != nil {
				d.OnResult(Result{
					Plugin:   p.Manifest.Name,
					Event:    req.Event,
					Response: resp,
					Err:      err,
				})
			}
		}
	}
}
