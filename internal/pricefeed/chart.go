package pricefeed

// MinBarHeight is the smallest bar height, in percent, drawn for a sample.
const MinBarHeight = 5.0

// Chart is the display model for a snapshot: the latest value, the range and
// one bar height per sample scaled to 0-100 between min and max.
type Chart struct {
	Latest  *float64  `json:"latest"`
	History []float64 `json:"history"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Heights []float64 `json:"heights"`
}

// NewChart builds a Chart from a buffer snapshot. A flat series scales
// against a range of one so every bar sits at the floor height.
func NewChart(snapshot []float64) Chart {
	chart := Chart{
		History: snapshot,
		Heights: make([]float64, len(snapshot)),
	}
	if len(snapshot) == 0 {
		return chart
	}

	latest := snapshot[len(snapshot)-1]
	chart.Latest = &latest
	chart.Min, chart.Max = snapshot[0], snapshot[0]
	for _, p := range snapshot[1:] {
		chart.Min = min(chart.Min, p)
		chart.Max = max(chart.Max, p)
	}

	spread := chart.Max - chart.Min
	if spread == 0 {
		spread = 1
	}
	for i, p := range snapshot {
		chart.Heights[i] = max((p-chart.Min)/spread*100, MinBarHeight)
	}
	return chart
}
