package main

import (
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

const samplingInterval = 10 * time.Millisecond

var rssBytesFunc = rssBytes

// measurePeakResidentMemory runs fn while sampling the resident set size and
// returns the highest reading seen. The sampler only observes; fn's result is
// passed through untouched.
func measurePeakResidentMemory(fn func() (Report, error)) (Report, float64, error) {
	baseline := rssBytesFunc()
	peak := baseline

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(samplingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if current := rssBytesFunc(); current > peak {
					peak = current
				}
			case <-stop:
				return
			}
		}
	}()

	report, err := fn()
	close(stop)
	wg.Wait()

	return report, peak, err
}

func rssBytes() float64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return float64(info.RSS)
}
