package tracking

import "math"

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// changes within ±trendDeadZone kg count as stable
const trendDeadZone = 0.5

// Round rounds v half away from zero to places decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// CalculateBMI returns weight / height², height given in cm, rounded to one decimal.
func CalculateBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return Round(weightKg/(m*m), 1)
}

// TrendSummary describes the direction of a weight series over a window of days.
type TrendSummary struct {
	Trend               string  `json:"trend"`
	TotalChange         float64 `json:"total_change"`
	AverageWeeklyChange float64 `json:"average_weekly_change"`
}

// ComputeTrend compares the last weight with the first. Fewer than two
// weights is stable with no change.
func ComputeTrend(weights []float64, days int) TrendSummary {
	summary := TrendSummary{Trend: TrendStable}
	if len(weights) < 2 {
		return summary
	}

	// rounded so float noise cannot push an exact ±0.5 over the boundary
	change := Round(weights[len(weights)-1]-weights[0], 6)
	switch {
	case change > trendDeadZone:
		summary.Trend = TrendIncreasing
	case change < -trendDeadZone:
		summary.Trend = TrendDecreasing
	}

	summary.TotalChange = Round(change, 1)
	if days > 0 {
		summary.AverageWeeklyChange = Round(change/(float64(days)/7), 2)
	}
	return summary
}

// WeightSample is one point of a weight series.
type WeightSample struct {
	Date   string
	Weight float64
	BMI    *float64
}

// WeightPeriod is a closed run of strictly decreasing or increasing weights.
type WeightPeriod struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	StartWeight float64 `json:"start_weight"`
	EndWeight   float64 `json:"end_weight"`
	Change      float64 `json:"change"`
}

type direction int

const (
	directionNone direction = iota
	directionLoss
	directionGain
)

// SegmentPeriods splits a chronological series into loss and gain periods.
// A period closes only when the direction reverses; equal consecutive weights
// neither close nor open one, and the trailing run is left open.
func SegmentPeriods(samples []WeightSample) (loss, gain []WeightPeriod) {
	loss, gain = []WeightPeriod{}, []WeightPeriod{}
	if len(samples) < 2 {
		return loss, gain
	}

	current := directionNone
	start := samples[0]
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		switch {
		case cur.Weight < prev.Weight && current != directionLoss:
			if current == directionGain {
				gain = append(gain, newPeriod(start, prev))
			}
			current = directionLoss
			start = prev
		case cur.Weight > prev.Weight && current != directionGain:
			if current == directionLoss {
				loss = append(loss, newPeriod(start, prev))
			}
			current = directionGain
			start = prev
		}
	}
	return loss, gain
}

func newPeriod(start, end WeightSample) WeightPeriod {
	return WeightPeriod{
		StartDate:   start.Date,
		EndDate:     end.Date,
		StartWeight: start.Weight,
		EndWeight:   end.Weight,
		Change:      Round(end.Weight-start.Weight, 1),
	}
}

// WeightExtreme is the highest or lowest sample. Empty marshals as {}.
type WeightExtreme struct {
	Weight float64  `json:"weight,omitempty"`
	Date   string   `json:"date,omitempty"`
	BMI    *float64 `json:"bmi,omitempty"`
}

// FindExtremes returns the first occurrence of the maximum and the minimum weight.
func FindExtremes(samples []WeightSample) (highest, lowest WeightExtreme) {
	if len(samples) == 0 {
		return highest, lowest
	}
	hi, lo := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s.Weight > hi.Weight {
			hi = s
		}
		if s.Weight < lo.Weight {
			lo = s
		}
	}
	return WeightExtreme{Weight: hi.Weight, Date: hi.Date, BMI: hi.BMI},
		WeightExtreme{Weight: lo.Weight, Date: lo.Date, BMI: lo.BMI}
}
