package metric

import (
	"log/slog"
	"strconv"
	"time"

	"levelup/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func register(name string, collector prometheus.Collector) bool {
	if err := prometheus.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "metric", name, "error", err)
			return false
		}
	}
	slog.Debug("metric registered", "metric", name)
	return true
}

func unregister(name string, collector prometheus.Collector) {
	switch prometheus.Unregister(collector) {
	case true:
		slog.Debug("metric unregistered", "metric", name)
	case false:
		slog.Warn("metric not registered", "metric", name)
	}
}

// Probe the database on every tick.
func databaseEmptyRead(as *utils.AppState, tickerInterval time.Duration) {
	const name = "levelup_database_empty_read_microsec"
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The latency of an empty database read in microseconds",
	})
	if register(name, gauge) {
		gauge.Set(0)
	}
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, gauge)
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				gauge.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

// Report the latest sample from ch, back to 0 when no sample arrives for a
// whole clear interval.
func latencyGauge(as *utils.AppState, name string, help string, ch <-chan float64, clearTickerInterval time.Duration) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	if register(name, gauge) {
		gauge.Set(0)
	}
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		clearTicker := time.NewTicker(clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, gauge)
				return
			case latency := <-ch:
				gauge.Set(latency)
				clearTicker.Reset(clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func httpRequests(as *utils.AppState) {
	const name = "levelup_http_requests_total"
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: "Number of handled HTTP requests by method and status code",
	}, []string{"method", "code"})
	register(name, counter)
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, counter)
				return
			case sample := <-as.MetricChans.HTTPRequestHandled:
				counter.WithLabelValues(sample.Method, strconv.Itoa(sample.Code)).Inc()
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, tickerInterval)
	latencyGauge(as,
		"levelup_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, clearTickerInterval)
	latencyGauge(as,
		"levelup_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, clearTickerInterval)
	latencyGauge(as,
		"levelup_auth_lookup_microsec",
		"The latency of resolving an API token in microseconds",
		as.MetricChans.AuthLookup, clearTickerInterval)
	httpRequests(as)
}
