package main

import (
	"sync"
	"testing"
	"time"
)

func TestMeasurePeakResidentMemoryTracksPeak(t *testing.T) {
	readings := []float64{100, 180, 120}
	var mu sync.Mutex

	rssBytesFunc = func() float64 {
		mu.Lock()
		defer mu.Unlock()
		if len(readings) == 0 {
			return 120
		}
		v := readings[0]
		readings = readings[1:]
		return v
	}
	t.Cleanup(func() { rssBytesFunc = rssBytes })

	want := Report{Stats: Stats{Mean: 1}, Elapsed: 250 * time.Millisecond}
	report, peak, err := measurePeakResidentMemory(func() (Report, error) {
		time.Sleep(5 * samplingInterval)
		return want, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != want {
		t.Fatalf("report not passed through: %#v", report)
	}
	if peak != 180 {
		t.Fatalf("expected peak 180, got %v", peak)
	}
}

func TestMeasurePeakResidentMemoryPassesError(t *testing.T) {
	rssBytesFunc = func() float64 { return 0 }
	t.Cleanup(func() { rssBytesFunc = rssBytes })

	_, peak, err := measurePeakResidentMemory(func() (Report, error) {
		return Report{}, ErrNoValidNumbers
	})

	if err != ErrNoValidNumbers {
		t.Fatalf("expected ErrNoValidNumbers, got %v", err)
	}
	if peak != 0 {
		t.Fatalf("expected peak 0, got %v", peak)
	}
}
