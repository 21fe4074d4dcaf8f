package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var (
	MessagesHandled   = newCounter("messages_handled", "The total number of handled messages")
	CommandsProcessed = newCounter("commands_processed", "The total number of processed commands")
	QuoteRequests     = newCounter("quote_requests", "The total number of requests made to the quote provider")
	AlertsFired       = newCounter("alerts_fired", "The total number of alert notifications sent")

	AlertPairs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tag1bot",
		Subsystem: "currency",
		Name:      "alert_pairs_last_pass",
		Help:      "Distinct currency pairs quoted during the last alert pass",
	})
)

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tag1bot",
		Subsystem: "currency",
		Name:      name,
		Help:      help,
	})
}

func init() {
	prometheus.MustRegister(MessagesHandled, CommandsProcessed, QuoteRequests, AlertsFired, AlertPairs)
}

// Value extracts the current value of a counter or gauge collector, used
// when persisting counters across restarts.
func Value(metric prometheus.Collector) float64 {
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Printf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		return metricProto.Counter.GetValue()
	}
	if metricProto.Gauge != nil {
		return metricProto.Gauge.GetValue()
	}
	return 0
}
