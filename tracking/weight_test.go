package tracking

import "testing"

func TestCalculateBMI(t *testing.T) {
	t.Parallel()

	if got := CalculateBMI(70, 175); got != 22.9 {
		t.Fatalf("CalculateBMI(70, 175) = %v, want 22.9", got)
	}
	if got := CalculateBMI(90, 180); got != 27.8 {
		t.Fatalf("CalculateBMI(90, 180) = %v, want 27.8", got)
	}
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		weights    []float64
		days       int
		wantTrend  string
		wantChange float64
		wantWeekly float64
	}{
		{"no data", nil, 30, TrendStable, 0, 0},
		{"single point", []float64{80}, 30, TrendStable, 0, 0},
		{"exact upper boundary is stable", []float64{80, 80.5}, 7, TrendStable, 0.5, 0.5},
		{"exact lower boundary is stable", []float64{80, 79.5}, 7, TrendStable, -0.5, -0.5},
		{"float noise at boundary is stable", []float64{69.8, 70.3}, 7, TrendStable, 0.5, 0.5},
		{"increasing", []float64{80, 80.2, 81}, 14, TrendIncreasing, 1, 0.5},
		{"decreasing", []float64{82, 81, 79.9}, 30, TrendDecreasing, -2.1, -0.49},
		{"zero window", []float64{80, 78}, 0, TrendDecreasing, -2, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeTrend(tt.weights, tt.days)
			if got.Trend != tt.wantTrend || got.TotalChange != tt.wantChange || got.AverageWeeklyChange != tt.wantWeekly {
				t.Fatalf("ComputeTrend(%v, %d) = %+v, want {%s %v %v}", tt.weights, tt.days, got, tt.wantTrend, tt.wantChange, tt.wantWeekly)
			}
		})
	}
}

func samples(weights ...float64) []WeightSample {
	out := make([]WeightSample, len(weights))
	for i, w := range weights {
		out[i] = WeightSample{Date: string(rune('a' + i)), Weight: w}
	}
	return out
}

func TestSegmentPeriods(t *testing.T) {
	t.Parallel()

	loss, gain := SegmentPeriods(samples(80, 79, 78, 79, 81))
	if len(loss) != 1 || len(gain) != 0 {
		t.Fatalf("got %d loss and %d gain periods, want 1 and 0", len(loss), len(gain))
	}
	want := WeightPeriod{StartDate: "a", EndDate: "c", StartWeight: 80, EndWeight: 78, Change: -2}
	if loss[0] != want {
		t.Fatalf("loss period = %+v, want %+v", loss[0], want)
	}
}

func TestSegmentPeriodsRoundsChange(t *testing.T) {
	t.Parallel()

	loss, _ := SegmentPeriods(samples(80.1, 79.7, 79.3, 79.5))
	if len(loss) != 1 {
		t.Fatalf("got %d loss periods, want 1", len(loss))
	}
	if loss[0].Change != -0.8 || loss[0].StartWeight != 80.1 || loss[0].EndWeight != 79.3 {
		t.Fatalf("loss period = %+v, want change -0.8 from 80.1 to 79.3", loss[0])
	}
}

func TestSegmentPeriodsAlternating(t *testing.T) {
	t.Parallel()

	// loss 80->78, gain 78->81, trailing loss 81->79 stays open
	loss, gain := SegmentPeriods(samples(80, 78, 78, 81, 79))
	if len(loss) != 1 || len(gain) != 1 {
		t.Fatalf("got %d loss and %d gain periods, want 1 and 1", len(loss), len(gain))
	}
	if gain[0].StartWeight != 78 || gain[0].EndWeight != 81 || gain[0].Change != 3 {
		t.Fatalf("unexpected gain period %+v", gain[0])
	}
	if gain[0].StartDate != "c" {
		t.Fatalf("gain period should start at the last equal sample, got %s", gain[0].StartDate)
	}
}

func TestSegmentPeriodsFlatOrShort(t *testing.T) {
	t.Parallel()

	for _, in := range [][]WeightSample{nil, samples(80), samples(80, 80, 80)} {
		loss, gain := SegmentPeriods(in)
		if loss == nil || gain == nil || len(loss) != 0 || len(gain) != 0 {
			t.Fatalf("SegmentPeriods(%v) = %v, %v; want empty non-nil slices", in, loss, gain)
		}
	}
}

func TestFindExtremesFirstOccurrence(t *testing.T) {
	t.Parallel()

	hi, lo := FindExtremes(samples(80, 82, 78, 82, 78))
	if hi.Weight != 82 || hi.Date != "b" {
		t.Fatalf("highest = %+v, want 82 at b", hi)
	}
	if lo.Weight != 78 || lo.Date != "c" {
		t.Fatalf("lowest = %+v, want 78 at c", lo)
	}

	hi, lo = FindExtremes(nil)
	if hi != (WeightExtreme{}) || lo != (WeightExtreme{}) {
		t.Fatalf("expected empty extremes, got %+v %+v", hi, lo)
	}
}
