// Package sched implements the discrete-event scheduler (Composition) that
// drives a coupled model composition through its lifecycle: graph
// validation, the connect loop, the time-advance run loop, finalization,
// and the multi-process rank split.
package sched

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/clock"
	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/port"
	"github.com/finam-ufz/finam-sub001/status"
	"github.com/google/uuid"
)

// Composition is the top-level holder of components that owns and drives
// the scheduler: it exclusively owns its components, which in turn
// exclusively own their input/output slots.
type Composition struct {
	name string
	log  *slog.Logger

	components []port.IComponent

	rank     int
	topology *WorkerTopology
}

// New constructs a Composition named name (used as the logger's base name
// and in structured errors) owning components.
func New(name string, log *slog.Logger, components ...port.IComponent) *Composition {
	return &Composition{name: name, log: log, components: components}
}

// SetRank declares this process's rank within a multi-process run, and the
// topology assigning worker-process ranges to multi-process-capable
// components. Only meaningful when at least one component implements
// [port.IMpiComponent]; rank 0 is always the leader.
func (c *Composition) SetRank(rank int, topology *WorkerTopology) {
	c.rank = rank
	c.topology = topology
}

// Components returns the composition's owned components, in construction
// order.
func (c *Composition) Components() []port.IComponent { return c.components }

// Initialize calls Initialize on every component, in construction order.
// After this call, every component's input/output slots exist and may be
// wired.
func (c *Composition) Initialize(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.sched.initialize")
	defer func() { op.End(retErr) }()

	for _, comp := range c.components {
		if err := comp.Initialize(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunWorkers runs the non-leader-rank worker loop for every
// multi-process-capable component assigned to this process's rank, then
// reports whether this process is the leader (rank 0). Non-leader callers
// should return immediately after this call without running the normal
// pipeline; leader callers proceed to Run.
func (c *Composition) RunWorkers(ctx context.Context) (isLeader bool, retErr error) {
	op := trace.Begin(ctx, c.log, "finam.sched.run_workers", slog.Int("rank", c.rank))
	defer func() { op.End(retErr) }()

	if c.rank == 0 {
		return true, nil
	}
	for _, comp := range c.components {
		mpiComp, ok := comp.(port.IMpiComponent)
		if !ok {
			continue
		}
		if c.topology != nil && !c.topology.IsWorkerRank(comp.Name(), c.rank) {
			continue
		}
		if err := mpiComp.RunMPI(ctx); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Run validates the coupling graph, runs the connect loop to completion,
// validates every component, then repeatedly advances whichever
// time-bearing component is furthest behind until none remain below tMax,
// and finally finalizes every component. A run ID is generated and
// threaded through ctx so every log line emitted during this call
// correlates.
func (c *Composition) Run(ctx context.Context, tMax clock.Timestamp) (retErr error) {
	ctx = trace.WithRequestID(ctx, uuid.NewString())
	op := trace.Begin(ctx, c.log, "finam.sched.run", slog.String("t_max", tMax.String()))
	defer func() { op.End(retErr) }()

	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := c.connect(ctx); err != nil {
		return err
	}
	for _, comp := range c.components {
		if err := comp.Validate(ctx); err != nil {
			return err
		}
	}

	if err := c.advance(ctx, tMax); err != nil {
		return err
	}

	for _, comp := range c.components {
		if err := comp.Finalize(ctx); err != nil {
			return err
		}
	}
	return nil
}

// connect repeatedly invokes Connect on every component until every
// component reaches Connected, checking for progress between rounds:
// progress is at least one component transitioning from ConnectingIdle to
// Connecting, or reaching Connected. A round producing no progress while
// some component remains unconnected fails with connect deadlock.
func (c *Composition) connect(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.sched.connect")
	defer func() { op.End(retErr) }()

	for {
		progress := false
		allConnected := true

		for _, comp := range c.components {
			before := comp.Status()
			if before == status.Connected {
				continue
			}
			if err := comp.Connect(ctx); err != nil {
				return err
			}
			after := comp.Status()

			if after == status.Connected || (before == status.ConnectingIdle && after == status.Connecting) {
				progress = true
			}
			if after != status.Connected {
				allConnected = false
			}
		}

		if allConnected {
			return nil
		}
		if !progress {
			return ferr.New(ferr.KindConnectDeadlock, c.name, "", "connect loop made no progress in a full round")
		}
	}
}

// advance runs the discrete-event loop: repeatedly selecting the
// time-bearing component with the smallest Time() below tMax and invoking
// Update on it, until none remain. Ties are broken by insertion order. A
// component that finishes is removed from future selection.
func (c *Composition) advance(ctx context.Context, tMax clock.Timestamp) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.sched.advance", slog.String("t_max", tMax.String()))
	defer func() { op.End(retErr) }()

	timeComponents := make([]port.ITimeComponent, 0, len(c.components))
	for _, comp := range c.components {
		if tc, ok := comp.(port.ITimeComponent); ok {
			timeComponents = append(timeComponents, tc)
		}
	}

	for {
		idx := -1
		var earliest clock.Timestamp
		for i, tc := range timeComponents {
			if tc == nil {
				continue
			}
			t := tc.Time()
			if !t.Before(tMax) {
				continue
			}
			if idx == -1 || t.Before(earliest) {
				idx = i
				earliest = t
			}
		}
		if idx == -1 {
			return nil
		}

		selected := timeComponents[idx]
		if err := selected.Update(ctx); err != nil {
			return err
		}
		if selected.Status() == status.Finished {
			timeComponents[idx] = nil
		}
	}
}
