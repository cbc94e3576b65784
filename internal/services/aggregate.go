package services

import (
	"sort"
	"strings"
)

// MaxPainPoints caps the pain-point frequency table at the eight most
// frequent locations, matching what the report layouts can show.
const MaxPainPoints = 8

// PainPoint is one row of the frequency table.
type PainPoint struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// SeriesPoint is one entry of the pain-intensity time series.
type SeriesPoint struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Intensity int    `json:"intensity"`
}

// PainSeries is the night-quiz intensity series with summary statistics.
// HasData distinguishes "zero night quizzes" from a mean that happens to be
// zero; consumers must check it before reading Mean/Min/Max.
type PainSeries struct {
	Points  []SeriesPoint `json:"points"`
	Mean    float64       `json:"mean"`
	Min     int           `json:"min"`
	Max     int           `json:"max"`
	HasData bool          `json:"has_data"`
}

// TopPainPoints tallies location samples and returns at most limit rows,
// ordered by count descending. Ties are broken by label ascending
// (case-insensitive) so the output is deterministic regardless of input
// order.
func TopPainPoints(samples []LocationSample, limit int) []PainPoint {
	counts := map[string]int{}
	for _, s := range samples {
		counts[s.Location]++
	}
	out := make([]PainPoint, 0, len(counts))
	for loc, n := range counts {
		out = append(out, PainPoint{Location: loc, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Location) < strings.ToLower(out[j].Location)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildPainSeries orders intensity samples by date ascending and derives
// mean, min, and max. Multiple quizzes on the same day all appear; nothing
// is de-duplicated. An empty input yields HasData=false, never NaN.
func BuildPainSeries(samples []IntensitySample) PainSeries {
	if len(samples) == 0 {
		return PainSeries{Points: []SeriesPoint{}}
	}
	ordered := make([]IntensitySample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	series := PainSeries{
		Points:  make([]SeriesPoint, 0, len(ordered)),
		Min:     ordered[0].Intensity,
		Max:     ordered[0].Intensity,
		HasData: true,
	}
	sum := 0
	for _, s := range ordered {
		series.Points = append(series.Points, SeriesPoint{Date: s.Date.Format("2006-01-02"), Intensity: s.Intensity})
		sum += s.Intensity
		if s.Intensity < series.Min {
			series.Min = s.Intensity
		}
		if s.Intensity > series.Max {
			series.Max = s.Intensity
		}
	}
	series.Mean = float64(sum) / float64(len(ordered))
	return series
}
