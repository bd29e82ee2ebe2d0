package port

import (
	"context"
	"log/slog"

	"github.com/finam-ufz/finam-sub001/ferr"
	"github.com/finam-ufz/finam-sub001/internal/trace"
	"github.com/finam-ufz/finam-sub001/status"
)

// Component is the base lifecycle implementation every concrete component
// embeds. It centralizes the status guard: every lifecycle method checks
// its precondition status before delegating to the embedding type's hook,
// and advances status on success.
//
// A concrete component embeds *Component and supplies its behavior via
// ComponentHooks; Component's own methods (which satisfy [IComponent])
// handle status bookkeeping, slot maps, and logging around each hook call.
type Component struct {
	name   string
	log    *slog.Logger
	st     status.ComponentStatus
	inputs map[string]IInput
	out    map[string]IOutput

	connectStatusSet bool

	Hooks ComponentHooks
}

// ComponentHooks are the behavior a concrete component supplies; Component
// provides everything else (status bookkeeping, slot maps, logging).
type ComponentHooks struct {
	// Initialize creates the component's input and output slots by calling
	// AddInput/AddOutput, then returns.
	Initialize func(ctx context.Context, c *Component) error
	// Connect pushes initial values to outputs and/or pulls initial values
	// from inputs. May be called multiple times.
	Connect func(ctx context.Context, c *Component) error
	// Validate is the last chance to reject the configuration.
	Validate func(ctx context.Context, c *Component) error
	// Update advances the component by exactly one internal step. Returning
	// finished=true moves status to Finished instead of Updated.
	Update func(ctx context.Context, c *Component) (finished bool, err error)
	// Finalize releases resources.
	Finalize func(ctx context.Context, c *Component) error
}

// NewComponent constructs a Component with status Created and the given
// lifecycle hooks.
func NewComponent(name string, log *slog.Logger, hooks ComponentHooks) *Component {
	return &Component{
		name:   name,
		log:    log,
		st:     status.Created,
		inputs: make(map[string]IInput),
		out:    make(map[string]IOutput),
		Hooks:  hooks,
	}
}

// Name returns the component's name.
func (c *Component) Name() string { return c.name }

// Status returns the component's current lifecycle status.
func (c *Component) Status() status.ComponentStatus { return c.st }

// Inputs returns the component's input slots, keyed by name.
func (c *Component) Inputs() map[string]IInput { return c.inputs }

// Outputs returns the component's output slots, keyed by name.
func (c *Component) Outputs() map[string]IOutput { return c.out }

// AddInput registers in under name, deriving a hierarchical logger name
// "<- "+name for it. Must be called only from within the Initialize hook.
func (c *Component) AddInput(name string, in IInput) {
	if setter, ok := in.(interface{ SetLogger(*slog.Logger) }); ok {
		setter.SetLogger(c.childLogger("<- " + name))
	}
	c.inputs[name] = in
}

// AddOutput registers out under name, deriving a hierarchical logger name
// "-> "+name for it. Must be called only from within the Initialize hook.
func (c *Component) AddOutput(name string, out IOutput) {
	if setter, ok := out.(interface{ SetLogger(*slog.Logger) }); ok {
		setter.SetLogger(c.childLogger("-> " + name))
	}
	c.out[name] = out
}

func (c *Component) childLogger(slot string) *slog.Logger {
	if c.log == nil {
		return nil
	}
	return c.log.With(slog.String("slot", slot))
}

func (c *Component) requireStatus(op string, allowed ...status.ComponentStatus) error {
	for _, s := range allowed {
		if c.st == s {
			return nil
		}
	}
	return ferr.New(ferr.KindStatus, c.name, "",
		"unexpected status %s for %s", c.st, op)
}

// Initialize requires status Created, runs the Initialize hook, and
// advances to Initialized.
func (c *Component) Initialize(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.port.initialize", slog.String("phase", "initialize"))
	defer func() { op.End(retErr) }()

	if err := c.requireStatus("initialize", status.Created); err != nil {
		return err
	}
	if c.Hooks.Initialize != nil {
		if err := c.Hooks.Initialize(ctx, c); err != nil {
			return err
		}
	}
	c.st = status.Initialized
	return nil
}

// Connect requires status Initialized, Connecting, or ConnectingIdle, runs
// the Connect hook, and leaves status to the hook's own [Component.SetConnectStatus]
// call (defaulting to Connected if the hook never calls it).
func (c *Component) Connect(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.port.connect", slog.String("phase", "connect"))
	defer func() { op.End(retErr) }()

	if err := c.requireStatus("connect", status.Initialized, status.Connecting, status.ConnectingIdle); err != nil {
		return err
	}
	c.connectStatusSet = false
	if c.Hooks.Connect != nil {
		if err := c.Hooks.Connect(ctx, c); err != nil {
			return err
		}
	}
	if !c.connectStatusSet {
		c.st = status.Connected
	}
	return nil
}

// SetConnectStatus lets the Connect hook record partial progress: call
// with Connecting when at least one required pull succeeded but others
// failed with a no-data signal, or ConnectingIdle when nothing could be
// pulled. Calling it is optional; Component.Connect defaults to Connected
// when the hook returns without calling it.
func (c *Component) SetConnectStatus(s status.ComponentStatus) {
	if s == status.Connecting || s == status.ConnectingIdle || s == status.Connected {
		c.st = s
		c.connectStatusSet = true
	}
}

// Validate requires status Connected, runs the Validate hook, and advances
// to Validated.
func (c *Component) Validate(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.port.validate")
	defer func() { op.End(retErr) }()

	if err := c.requireStatus("validate", status.Connected); err != nil {
		return err
	}
	if c.Hooks.Validate != nil {
		if err := c.Hooks.Validate(ctx, c); err != nil {
			return err
		}
	}
	c.st = status.Validated
	return nil
}

// Update requires status Validated or Updated, runs the Update hook, and
// advances to Finished or Updated depending on the hook's return.
func (c *Component) Update(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.port.update")
	defer func() { op.End(retErr) }()

	if err := c.requireStatus("update", status.Validated, status.Updated); err != nil {
		return err
	}
	finished := false
	if c.Hooks.Update != nil {
		var err error
		finished, err = c.Hooks.Update(ctx, c)
		if err != nil {
			return err
		}
	}
	if finished {
		c.st = status.Finished
	} else {
		c.st = status.Updated
	}
	return nil
}

// Finalize requires status Updated or Finished, runs the Finalize hook,
// and advances to Finalized.
func (c *Component) Finalize(ctx context.Context) (retErr error) {
	op := trace.Begin(ctx, c.log, "finam.port.finalize", slog.String("phase", "finalize"))
	defer func() { op.End(retErr) }()

	if err := c.requireStatus("finalize", status.Updated, status.Finished); err != nil {
		return err
	}
	if c.Hooks.Finalize != nil {
		if err := c.Hooks.Finalize(ctx, c); err != nil {
			return err
		}
	}
	c.st = status.Finalized
	return nil
}
