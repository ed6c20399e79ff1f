// Package builder assembles the hardware inventory table: it fills each
// record kind from configuration and probed hardware facts, flattens it
// through the codec and registers it with a table store. Registration
// order is fixed because handle-reference fields can only point at records
// that already have handles.
package builder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/codec"
	"github.com/smbtab/smbtab/pkg/config"
	"github.com/smbtab/smbtab/pkg/probe"
	"github.com/smbtab/smbtab/pkg/smbios"
	"github.com/smbtab/smbtab/pkg/store"
)

// ErrRegistrationFailed wraps any synthesis or store failure for a single
// record.
var ErrRegistrationFailed = &BuildError{"record registration failed"}

// BuildError represents a table assembly error.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return e.Message
}

// Builder assembles one boot's worth of records into a table store.
type Builder struct {
	store store.TableStore
	probe probe.Probe
	cfg   *config.Config
	sugar *zap.SugaredLogger
	now   func() time.Time

	// Measured once at the start of Run; zero when probing failed.
	memBytes uint64
}

// New returns a builder writing to st, describing the platform cfg names
// and the hardware pr reports.
func New(st store.TableStore, pr probe.Probe, cfg *config.Config, logger *zap.Logger) *Builder {
	return &Builder{
		store: st,
		probe: pr,
		cfg:   cfg,
		sugar: logger.Sugar(),
		now:   time.Now,
	}
}

// register flattens body plus its string pack and hands the record to the
// store. The returned handle is the only reference the caller keeps; on
// failure it is the HandleNone sentinel so consumers can embed it as-is.
func (b *Builder) register(body smbios.Body, strings []string) (smbios.Handle, error) {
	rec, err := codec.Synthesize(body, strings)
	if err != nil {
		return smbios.HandleNone, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	h, err := b.store.Add(rec)
	if err != nil {
		return smbios.HandleNone, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	b.sugar.Debugw("record registered", "type", rec[0], "handle", h, "bytes", len(rec))
	return h, nil
}

// Run walks the fixed assembly sequence. A failed step drops its records
// and is logged; the remaining steps still run, with any handle references
// to the dropped records left at the sentinel. Only context cancellation
// aborts the run.
func (b *Builder) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mem, err := b.probe.MemoryBytes()
	if err != nil {
		b.sugar.Warnw("memory size unavailable", "err", err)
	}
	b.memBytes = mem

	steps := []struct {
		name string
		fn   func() error
	}{
		{"firmware", b.addFirmware},
		{"system", b.addSystem},
		{"platform", b.addPlatform},
		{"processor", b.addProcessor},
		{"slot", b.addSlot},
		{"oem-strings", b.addOEMStrings},
		{"memory", b.addMemory},
		{"boot", b.addBoot},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.fn(); err != nil {
			b.sugar.Warnw("assembly step failed", "step", step.name, "err", err)
		}
	}

	return nil
}
