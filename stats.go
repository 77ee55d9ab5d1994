package main

import (
	"math"
	"sort"
)

type Stats struct {
	Mean     float64
	Median   float64
	Mode     float64
	Variance float64
	StdDev   float64
}

// calculateStatistics computes the five measures over samples without
// reordering them. An empty dataset has no statistics and yields ErrNoValidNumbers.
func calculateStatistics(samples []float64) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrNoValidNumbers
	}
	n := len(samples)

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	var sumsq float64
	for _, v := range samples {
		d := v - mean
		sumsq += d * d
	}
	variance := sumsq / float64(n)

	return Stats{
		Mean:     mean,
		Median:   median(samples),
		Mode:     mode(samples),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}, nil
}

func median(samples []float64) float64 {
	s := append([]float64(nil), samples...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[(n-1)/2] + s[n/2]) / 2.0
}

// mode returns the most frequent value. Ties go to the value seen first.
// Values group by ==, so every NaN forms its own group.
func mode(samples []float64) float64 {
	index := make(map[float64]int, len(samples))
	var values []float64
	var counts []int
	for _, v := range samples {
		if i, seen := index[v]; seen {
			counts[i]++
			continue
		}
		if !math.IsNaN(v) {
			index[v] = len(values)
		}
		values = append(values, v)
		counts = append(counts, 1)
	}

	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return values[best]
}
