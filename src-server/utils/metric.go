package utils

import "time"

type Metric struct {
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	AuthLookup         chan float64
	HTTPRequestHandled chan HTTPRequestSample
}

type HTTPRequestSample struct {
	Method string
	Code   int
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:       make(chan float64, 64),
		DatabaseWrite:      make(chan float64, 64),
		AuthLookup:         make(chan float64, 64),
		HTTPRequestHandled: make(chan HTTPRequestSample, 256),
	}
}

// Record the latency since start in microseconds. Samples are dropped when
// nothing is collecting them, so handlers never block on metrics.
func (m *Metric) Observe(ch chan float64, start time.Time) {
	select {
	case ch <- float64(time.Since(start).Microseconds()):
	default:
	}
}

func (m *Metric) ObserveRequest(method string, code int) {
	select {
	case m.HTTPRequestHandled <- HTTPRequestSample{Method: method, Code: code}:
	default:
	}
}
