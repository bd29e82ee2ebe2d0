package sched

import (
	"context"

	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/port"
)

// Validate checks the coupling graph for dangling inputs and disallowed
// branching below a no-branch adapter. Called automatically by Run;
// exposed standalone for callers that want to validate a wired-up
// composition before committing to a full run.
func (c *Composition) Validate(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.sched.validate")
	defer func() { op.End(retErr) }()

	for _, comp := range c.components {
		if err := ctx.Err(); err != nil {
			return err
		}
		for name, in := range comp.Inputs() {
			if err := validateInputConnected(comp.Name(), name, in); err != nil {
				return err
			}
		}
		for name, out := range comp.Outputs() {
			if err := validateNoBranch(comp.Name(), name, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateInputConnected walks upstream from in through any adapter chain
// to the root source, failing with a link error if any input or adapter
// along the chain has no source set.
func validateInputConnected(component, name string, in port.IInput) error {
	if !in.HasSource() {
		return ferr.New(ferr.KindLink, component, name, "unconnected input")
	}
	src := in.Source()
	for {
		adapter, ok := src.(port.IAdapter)
		if !ok {
			return nil
		}
		if !adapter.HasSource() {
			return ferr.New(ferr.KindLink, component, name, "unconnected input (adapter %q has no source)", adapter.Name())
		}
		src = adapter.Source()
	}
}

// validateNoBranch performs a depth-first traversal of out's downstream
// subgraph, marking a subtree "no-branch" as soon as it enters a
// no-branch-capable adapter; any node within a marked subtree that has more
// than one downstream target fails with a branching error.
func validateNoBranch(component, name string, out port.IOutput) error {
	type frame struct {
		node     port.IOutput
		noBranch bool
	}

	stack := []frame{{out, false}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		noBranch := f.noBranch
		if nb, ok := f.node.(port.NoBranchAdapter); ok {
			noBranch = noBranch || nb.NoBranch()
		}

		targets := f.node.Targets()
		if noBranch && len(targets) > 1 {
			return ferr.New(ferr.KindBranching, component, name,
				"disallowed branching below a no-branch adapter")
		}

		for _, target := range targets {
			if adapter, ok := target.(port.IOutput); ok {
				stack = append(stack, frame{adapter, noBranch})
			}
		}
	}
	return nil
}
