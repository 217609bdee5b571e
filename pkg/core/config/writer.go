package config

import (
	"net/url"

	"github.com/pkg/errors"

	"github.com/signalfx/winsnmp-agent/pkg/core/common/httpclient"
)

// WriterConfig holds configuration for the datapoint/event writer.
type WriterConfig struct {
	// Where to send data.  'log' writes everything to the agent log,
	// 'signalfx' ships it to SignalFx ingest.
	Mode string `yaml:"mode" default:"log" validate:"oneof=log signalfx"`
	// Base URL of the ingest server
	IngestURL string `yaml:"ingestUrl" default:"https://ingest.signalfx.com"`
	// Access token used when Mode is 'signalfx'
	SignalFxAccessToken string `yaml:"signalFxAccessToken"`
	// How often to flush buffered events
	EventSendIntervalSeconds int `yaml:"eventSendIntervalSeconds" default:"1" validate:"gt=0"`
	// The most datapoints to send in a single request
	DatapointMaxBatchSize int `yaml:"datapointMaxBatchSize" default:"1000" validate:"gt=0"`
	// HTTP client settings used when Mode is 'signalfx'
	HTTP httpclient.HTTPConfig `yaml:"http" default:"{}"`
	// Log every datapoint that passes through the writer at debug level
	LogDatapoints bool `yaml:"logDatapoints"`
	// Log every event that passes through the writer at debug level
	LogEvents bool `yaml:"logEvents"`

	GlobalDimensions map[string]string `yaml:"-"`
}

// ParsedIngestURL parses IngestURL
func (wc *WriterConfig) ParsedIngestURL() (*url.URL, error) {
	u, err := url.Parse(wc.IngestURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid ingestUrl %q", wc.IngestURL)
	}
	return u, nil
}

// Validate the writer config
func (wc *WriterConfig) Validate() error {
	if wc.Mode != "signalfx" {
		return nil
	}
	if wc.SignalFxAccessToken == "" {
		return errors.New("signalFxAccessToken is required when writer mode is signalfx")
	}
	_, err := wc.ParsedIngestURL()
	return err
}
