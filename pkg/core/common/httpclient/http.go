// Package httpclient builds the HTTP client used to talk to ingest
package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// HTTPConfig holds the client side settings of HTTP connections
type HTTPConfig struct {
	// How long a single request may take, including reading the response
	TimeoutSeconds int `yaml:"timeoutSeconds" default:"10" validate:"gt=0"`
	// If true, the server's TLS cert will not be verified
	SkipVerify bool `yaml:"skipVerify"`
	// Path to a CA cert to trust in addition to the system pool
	CACertPath string `yaml:"caCertPath"`
}

// Build returns a configured http.Client
func (h *HTTPConfig) Build() (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: h.SkipVerify, // nolint: gosec
	}
	if h.CACertPath != "" {
		pool, err := certPoolWithCAFile(h.CACertPath)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}
	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Timeout:   time.Duration(h.TimeoutSeconds) * time.Second,
		Transport: transport,
	}, nil
}

func certPoolWithCAFile(caCertPath string) (*x509.CertPool, error) {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}

	bytes, err := ioutil.ReadFile(caCertPath)
	if err != nil {
		return nil, errors.Wrapf(err, "CA cert path %s could not be read", caCertPath)
	}

	if !pool.AppendCertsFromPEM(bytes) {
		return nil, errors.Errorf("CA cert file %s is not the right format", caCertPath)
	}
	return pool, nil
}
