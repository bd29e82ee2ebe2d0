package sched

import "github.com/finam-ufz/finam-sub001/ferr"

// ComponentProcesses names how many dedicated worker processes a
// multi-process-capable component requires.
type ComponentProcesses struct {
	Name  string
	Count int
}

// WorkerTopology assigns contiguous worker-process rank ranges to
// multi-process-capable components, grounded on
// original_source/src/finam/core/mpi.py's create_communicators: rank 0 is
// always the leader running the normal pipeline, and every other rank is
// assigned to exactly one component's worker range. Setting up the
// underlying MPI communicators themselves is an external collaborator's
// job; WorkerTopology only validates and records the rank-range shape.
type WorkerTopology struct {
	totalProcesses int
	ranges         map[string][2]int
}

// NewWorkerTopology validates that the requested worker-process count
// across processes sums to exactly one less than totalProcesses, then
// assigns each component a contiguous rank range starting at rank 1, in
// the order given. Fails with a link error on mismatch.
func NewWorkerTopology(totalProcesses int, processes []ComponentProcesses) (*WorkerTopology, error) {
	requested := 0
	for _, p := range processes {
		requested += p.Count
	}
	if requested != totalProcesses-1 {
		return nil, ferr.New(ferr.KindLink, "", "",
			"requested worker processes (%d) must be one less than available processes (%d)",
			requested, totalProcesses)
	}

	ranges := make(map[string][2]int, len(processes))
	offset := 1
	for _, p := range processes {
		ranges[p.Name] = [2]int{offset, offset + p.Count}
		offset += p.Count
	}
	return &WorkerTopology{totalProcesses: totalProcesses, ranges: ranges}, nil
}

// RankRange returns the [start, end) worker-rank range assigned to
// component, or ok=false if component was not given any processes.
func (w *WorkerTopology) RankRange(component string) (start, end int, ok bool) {
	r, ok := w.ranges[component]
	if !ok {
		return 0, 0, false
	}
	return r[0], r[1], true
}

// IsWorkerRank reports whether rank falls inside component's assigned
// worker range.
func (w *WorkerTopology) IsWorkerRank(component string, rank int) bool {
	start, end, ok := w.RankRange(component)
	return ok && rank >= start && rank < end
}
