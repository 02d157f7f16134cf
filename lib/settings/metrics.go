package settings

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// providerMetrics holds the counters of all providers using the same format
type providerMetrics struct {
	reads          *metrics.Counter
	writes         *metrics.Counter
	saveFailures   *metrics.Counter
	decodeFailures *metrics.Counter
	encodeFailures *metrics.Counter
	resets         *metrics.Counter
}

func newProviderMetrics(format string) *providerMetrics {
	counter := func(name string) *metrics.Counter {
		return metrics.GetOrCreateCounter(fmt.Sprintf(`psettings_%s_total{format=%q}`, name, format))
	}
	return &providerMetrics{
		reads:          counter("reads"),
		writes:         counter("writes"),
		saveFailures:   counter("save_failures"),
		decodeFailures: counter("decode_failures"),
		encodeFailures: counter("encode_failures"),
		resets:         counter("resets"),
	}
}

// WriteMetrics writes the counters of all providers (and the parse failures
// of the document stores) in Prometheus text format to w.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
