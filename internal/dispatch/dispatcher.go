// Hubtrack - Customer Identity and Event Tracking SDK
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hubtrack

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hubtrack/internal/logging"
	"github.com/tomtom215/hubtrack/internal/metrics"
	"github.com/tomtom215/hubtrack/internal/models"
)

var (
	// ErrUnknownMethod is returned for a method other than config, customer
	// or event.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrAlreadyDrained is returned by a second Drain.
	ErrAlreadyDrained = errors.New("pending queue already drained")

	// ErrInvalidOptions is returned when options are not valid JSON for
	// the method.
	ErrInvalidOptions = errors.New("invalid options")
)

// Operations are the tracker operations the dispatcher routes to.
// *tracker.Tracker implements it.
type Operations interface {
	Config(ctx context.Context, opts models.ConfigOptions) error
	Customer(ctx context.Context, data *models.CustomerData) error
	Event(ctx context.Context, opts models.EventOptions) error
	ReportError(ctx context.Context, op string, err error)
}

// Dispatcher routes named calls to Operations.
type Dispatcher struct {
	ops     Operations
	name    string
	wg      sync.WaitGroup
	drained atomic.Bool
}

// New creates a dispatcher bound to the object name hosts call it by.
func New(ops Operations, name string) *Dispatcher {
	return &Dispatcher{ops: ops, name: name}
}

// Name returns the object name.
func (d *Dispatcher) Name() string { return d.name }

// Call invokes method with JSON options.
//
// config runs to completion and returns its error. customer and event
// return once their options decode; the operation itself runs in the
// background and reports failures through diagnostics. Null or absent
// customer options reset the visitor's identity.
func (d *Dispatcher) Call(ctx context.Context, method string, options json.RawMessage) error {
	return d.call(ctx, method, options, false)
}

// Drain replays pending commands in order, once. Each command completes
// before the next starts. Failures do not stop the replay; config and
// decode errors are joined into the result.
func (d *Dispatcher) Drain(ctx context.Context, pending []Command) error {
	if !d.drained.CompareAndSwap(false, true) {
		return ErrAlreadyDrained
	}

	logging.Ctx(ctx).Debug().Int("commands", len(pending)).Msg("Draining pending queue")

	var errs []error
	for i, cmd := range pending {
		if err := d.call(ctx, cmd.Method, cmd.Options, true); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("index", i).Str("method", cmd.Method).Msg("Pending command failed")
			errs = append(errs, fmt.Errorf("pending command %d (%s): %w", i, cmd.Method, err))
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until every background task has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) call(ctx context.Context, method string, options json.RawMessage, wait bool) error {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	logging.Ctx(ctx).Debug().Str("method", method).Msg("Dispatching command")

	switch method {
	case MethodConfig:
		var opts models.ConfigOptions
		if err := decodeOptions(options, &opts); err != nil {
			metrics.RecordDispatch(method, err)
			return err
		}
		err := d.ops.Config(ctx, opts)
		metrics.RecordDispatch(method, err)
		return err

	case MethodCustomer:
		var data *models.CustomerData
		if !isNull(options) {
			data = &models.CustomerData{}
			if err := decodeOptions(options, data); err != nil {
				metrics.RecordDispatch(method, err)
				return err
			}
		}
		d.spawn(ctx, method, wait, func(ctx context.Context) error {
			return d.ops.Customer(ctx, data)
		})
		return nil

	case MethodEvent:
		var opts models.EventOptions
		if err := decodeOptions(options, &opts); err != nil {
			metrics.RecordDispatch(method, err)
			return err
		}
		d.spawn(ctx, method, wait, func(ctx context.Context) error {
			return d.ops.Event(ctx, opts)
		})
		return nil

	default:
		metrics.RecordDispatch("unknown", ErrUnknownMethod)
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// spawn runs fn as a tracked background task, or inline when wait is set.
// Background tasks outlive ctx cancellation.
func (d *Dispatcher) spawn(ctx context.Context, method string, wait bool, fn func(context.Context) error) {
	run := func(ctx context.Context) {
		err := fn(ctx)
		metrics.RecordDispatch(method, err)
		if err != nil {
			d.ops.ReportError(ctx, method, err)
		}
	}

	if wait {
		run(ctx)
		return
	}

	d.wg.Add(1)
	metrics.TrackInFlight(true)
	go func(ctx context.Context) {
		defer d.wg.Done()
		defer metrics.TrackInFlight(false)
		run(ctx)
	}(context.WithoutCancel(ctx))
}

// decodeOptions unmarshals raw into dst. Absent options decode as {}.
func decodeOptions(raw json.RawMessage, dst interface{}) error {
	if isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}
