package formatter

import (
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// MetricsToText renders gathered metric families, one row per labelled series.
//
// Counters and gauges show their value. Histograms show the sample count and mean.
func MetricsToText(families []*dto.MetricFamily) []byte {
	var rows [][]string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			rows = append(rows, []string{mf.GetName(), labelsOf(m), valueOf(mf.GetType(), m)})
		}
	}
	if len(rows) == 0 {
		return []byte("No metrics recorded.\n")
	}
	return renderTable([]string{"METRIC", "LABELS", "VALUE"}, rows)
}

func labelsOf(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}

func valueOf(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64)
	case dto.MetricType_GAUGE:
		return strconv.FormatFloat(m.GetGauge().GetValue(), 'f', -1, 64)
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		n := h.GetSampleCount()
		if n == 0 {
			return "0 samples"
		}
		mean := h.GetSampleSum() / float64(n)
		return strconv.FormatUint(n, 10) + " samples, mean " + strconv.FormatFloat(mean, 'g', 3, 64) + "s"
	default:
		return ""
	}
}
