package utils

import (
	"log"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
)

// WorkerCount decides how many scrape workers to start. Each worker owns a
// full browser instance, so the count is clamped to half the logical cores
// and never exceeds the number of queued queries.
func WorkerCount(configValue string, jobs int) int {
	if jobs < 1 {
		return 0
	}

	count := 0
	if manual, err := strconv.Atoi(configValue); err == nil && manual > 0 {
		log.Printf("Using manually configured number of workers: %d", manual)
		count = manual
	} else {
		if configValue != "auto" && configValue != "" {
			log.Printf("WARN: Invalid workers value '%s'. Defaulting to 'auto' mode.", configValue)
		}
		cores, err := cpu.Counts(true)
		if err != nil {
			log.Printf("WARN: Could not detect CPU cores. Falling back to 1 worker.")
			cores = 2
		}
		count = cores / 2
		if count < 1 {
			count = 1
		}
		if count > 8 {
			count = 8
		}
		log.Printf("System has %d logical cores. Automatically setting number of workers to: %d", cores, count)
	}

	if count > jobs {
		count = jobs
	}
	return count
}
