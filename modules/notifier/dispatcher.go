package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/schoolkit/pkg/async"
	"github.com/dmitrymomot/schoolkit/pkg/logger"
)

const defaultChannelTimeout = 10 * time.Second

// Dispatcher fans one event out to every registered channel
// concurrently. Channels are independent: one channel's failure or
// slowness never blocks or suppresses the others, and no channel
// outcome ever surfaces as an error to the caller that triggered the
// event. Outcomes are observable only through logs and, for tests,
// through the returned Dispatch handle.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithChannelTimeout bounds each channel's delivery attempt.
func WithChannelTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(disp *Dispatcher) {
		if log != nil {
			disp.logger = log
		}
	}
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(channels []Channel, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		channels: channels,
		timeout:  defaultChannelTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers the event to every channel in parallel and returns
// immediately. Delivery runs detached from the caller's context
// lifetime: the mutation that produced the event has already committed,
// so its request ending must not cancel in-flight notifications. Each
// attempt is bounded by the channel timeout instead.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) *Dispatch {
	base := context.WithoutCancel(ctx)

	futures := make([]*async.Future[Result], len(d.channels))
	for i, ch := range d.channels {
		futures[i] = async.Async(base, ch, func(ctx context.Context, ch Channel) (Result, error) {
			return d.deliver(ctx, ch, event), nil
		})
	}
	return &Dispatch{futures: futures}
}

func (d *Dispatcher) deliver(ctx context.Context, ch Channel, event Event) (res Result) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res = Result{Channel: ch.Name()}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("channel %s panicked: %v", ch.Name(), r)
		}
		d.logResult(ctx, event, res)
	}()

	outcome, err := ch.Deliver(ctx, event)
	res.Outcome = outcome
	res.Err = err
	if err != nil {
		res.Outcome = OutcomeFailed
	}
	return res
}

func (d *Dispatcher) logResult(ctx context.Context, event Event, res Result) {
	attrs := []slog.Attr{
		logger.Channel(res.Channel),
		logger.Outcome(res.Outcome),
		logger.UserID(event.Recipient.ID),
		logger.InvoiceID(event.Invoice.ID),
		slog.String("kind", string(event.Kind)),
	}
	if res.Err != nil {
		attrs = append(attrs, logger.Error(res.Err))
		d.logger.LogAttrs(ctx, slog.LevelError, "notification delivery failed", attrs...)
		return
	}
	d.logger.LogAttrs(ctx, slog.LevelInfo, "notification delivery", attrs...)
}

// Dispatch is the handle to one in-flight fan-out.
type Dispatch struct {
	futures []*async.Future[Result]
}

// Wait blocks until every channel has finished and returns the
// per-channel results in registration order.
func (d *Dispatch) Wait() []Result {
	results, _ := async.WaitAll(d.futures...)
	return results
}
