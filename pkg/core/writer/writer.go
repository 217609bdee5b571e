// Package writer drains the datapoint and event channels that monitors send
// on and either logs what comes through or ships it to SignalFx ingest.
package writer

import (
	"context"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/event"
	"github.com/signalfx/golib/v3/sfxclient"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// Sink is where the writer sends data.  *sfxclient.HTTPSink satisfies it.
type Sink interface {
	AddDatapoints(ctx context.Context, points []*datapoint.Datapoint) error
	AddEvents(ctx context.Context, events []*event.Event) error
}

// logSink writes everything to the agent log instead of sending it anywhere
type logSink struct {
	logger log.FieldLogger
}

func (s *logSink) AddDatapoints(ctx context.Context, points []*datapoint.Datapoint) error {
	for _, dp := range points {
		s.logger.Info(utils.DatapointToString(dp))
	}
	return nil
}

func (s *logSink) AddEvents(ctx context.Context, events []*event.Event) error {
	for _, ev := range events {
		s.logger.WithField("event", spew.Sdump(ev)).Info("Event")
	}
	return nil
}

// Writer receives datapoint batches and events on two buffered channels.
// Datapoints are sent as soon as they arrive, events are buffered and sent
// every EventSendIntervalSeconds.
type Writer struct {
	conf      *config.WriterConfig
	sink      Sink
	dpChan    chan []*datapoint.Datapoint
	eventChan chan *event.Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	dpsSent    atomic.Uint64
	eventsSent atomic.Uint64
	sendErrors atomic.Uint64
}

// New creates a writer for the given config and starts it.  In signalfx mode
// data goes to the configured ingest server.
func New(conf *config.WriterConfig) (*Writer, error) {
	var sink Sink
	switch conf.Mode {
	case "signalfx":
		client, err := newHTTPSink(conf)
		if err != nil {
			return nil, err
		}
		sink = client
	default:
		sink = &logSink{logger: log.WithField("component", "writer")}
	}
	return NewWithSink(conf, sink), nil
}

func newHTTPSink(conf *config.WriterConfig) (*sfxclient.HTTPSink, error) {
	ingestURL, err := conf.ParsedIngestURL()
	if err != nil {
		return nil, err
	}

	httpClient, err := conf.HTTP.Build()
	if err != nil {
		return nil, errors.Wrap(err, "could not build ingest HTTP client")
	}

	client := sfxclient.NewHTTPSink()
	client.Client = httpClient
	client.AuthToken = conf.SignalFxAccessToken

	dpEndpointURL, err := ingestURL.Parse("v2/datapoint")
	if err != nil {
		return nil, errors.Wrap(err, "could not construct datapoint ingest URL")
	}
	client.DatapointEndpoint = dpEndpointURL.String()

	eventEndpointURL, err := ingestURL.Parse("v2/event")
	if err != nil {
		return nil, errors.Wrap(err, "could not construct event ingest URL")
	}
	client.EventEndpoint = eventEndpointURL.String()

	return client, nil
}

// NewWithSink creates and starts a writer that sends to sink
func NewWithSink(conf *config.WriterConfig, sink Sink) *Writer {
	w := &Writer{
		conf:      conf,
		sink:      sink,
		dpChan:    make(chan []*datapoint.Datapoint, 100),
		eventChan: make(chan *event.Event, 100),
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	w.wg.Add(2)
	go w.listenForDatapoints()
	go w.listenForEvents()
	return w
}

// DPChannel returns the channel that datapoint batches should be sent on
func (w *Writer) DPChannel() chan<- []*datapoint.Datapoint {
	return w.dpChan
}

// EventChannel returns the channel that events should be sent on
func (w *Writer) EventChannel() chan<- *event.Event {
	return w.eventChan
}

func (w *Writer) listenForDatapoints() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case dps := <-w.dpChan:
			for i := range dps {
				w.preprocessDatapoint(dps[i])
			}
			w.sendDatapoints(dps)
		}
	}
}

func (w *Writer) listenForEvents() {
	defer w.wg.Done()

	ticker := time.NewTicker(time.Duration(w.conf.EventSendIntervalSeconds) * time.Second)
	defer ticker.Stop()

	var buf []*event.Event
	for {
		select {
		case <-w.ctx.Done():
			if len(buf) > 0 {
				w.sendEvents(buf)
			}
			return
		case ev := <-w.eventChan:
			buf = append(buf, ev)
		case <-ticker.C:
			if len(buf) > 0 {
				w.sendEvents(buf)
				buf = nil
			}
		}
	}
}

func (w *Writer) preprocessDatapoint(dp *datapoint.Datapoint) {
	dp.Dimensions = w.addGlobalDims(dp.Dimensions)

	if w.conf.LogDatapoints {
		log.Debugf("Sending datapoint:\n%s", utils.DatapointToString(dp))
	}
}

func (w *Writer) sendDatapoints(dps []*datapoint.Datapoint) {
	batchSize := w.conf.DatapointMaxBatchSize
	if batchSize <= 0 {
		batchSize = len(dps)
	}

	for start := 0; start < len(dps); start += batchSize {
		end := start + batchSize
		if end > len(dps) {
			end = len(dps)
		}
		batch := dps[start:end]

		// This sends synchronously
		if err := w.sink.AddDatapoints(w.ctx, batch); err != nil {
			w.sendErrors.Inc()
			log.WithError(err).Error("Error shipping datapoints")
			// If there is an error sending datapoints then just forget about them.
			continue
		}
		w.dpsSent.Add(uint64(len(batch)))
		log.Debugf("Sent %d datapoints", len(batch))
	}
}

func (w *Writer) sendEvents(events []*event.Event) {
	for i := range events {
		events[i].Dimensions = w.addGlobalDims(events[i].Dimensions)

		if w.conf.LogEvents {
			log.WithFields(log.Fields{
				"event": spew.Sdump(events[i]),
			}).Debug("Sending event")
		}
	}

	// The writer context may already be done when flushing at shutdown
	if err := w.sink.AddEvents(context.Background(), events); err != nil {
		w.sendErrors.Inc()
		log.WithError(err).Error("Error shipping events")
		return
	}
	w.eventsSent.Add(uint64(len(events)))
	log.Debugf("Sent %d events", len(events))
}

// Mutates dimensions in place to add global dimensions.  Also returns dims in
// case they were nil to begin with, so the return value should be assigned
// back.
func (w *Writer) addGlobalDims(dims map[string]string) map[string]string {
	if dims == nil {
		dims = make(map[string]string)
	}
	for name, value := range w.conf.GlobalDimensions {
		// If the dimension is already set, don't override
		if _, ok := dims[name]; !ok {
			dims[name] = value
		}
	}
	return dims
}

// DatapointsSent is the number of datapoints that were successfully sent
func (w *Writer) DatapointsSent() uint64 {
	return w.dpsSent.Load()
}

// EventsSent is the number of events that were successfully sent
func (w *Writer) EventsSent() uint64 {
	return w.eventsSent.Load()
}

// SendErrors is the number of batches that could not be sent
func (w *Writer) SendErrors() uint64 {
	return w.sendErrors.Load()
}

// Shutdown stops the writer, flushing any buffered events first
func (w *Writer) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
