// Package httplog provides a logging http.RoundTripper shared by all
// outbound service clients.
package httplog

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RoundTripper logs every outbound request with its destination, status,
// and duration.
type RoundTripper struct {
	destination string
	logger      zerolog.Logger
}

func NewRoundTripper(logger zerolog.Logger, destination string) *RoundTripper {
	return &RoundTripper{destination: destination, logger: logger}
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	res, err := http.DefaultTransport.RoundTrip(req)

	evt := r.logger.Info().
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("destination", r.destination).
		Float64("duration", time.Since(start).Seconds())

	if err != nil {
		evt.Int("code", 0).Str("error", err.Error()).Msg("")
		return nil, err
	}

	evt.Int("code", res.StatusCode).Msg("")
	return res, nil
}
