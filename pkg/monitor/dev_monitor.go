package monitor

import (
	"log"
	"maps"
	"slices"
)

// DevMonitor keeps a multiset of deviation magnitudes. Attach, Detach and Update only
// stage changes; Flush publishes them, so that a nonlinear cost function is evaluated
// once per structural edit rather than once per micro-update
type DevMonitor struct {
	staged       map[int]int // Magnitude -> occurrences
	published    map[int]int
	stagedSum    int
	publishedSum int
	touched      []int // Magnitudes staged since the last flush
}

func NewDevMonitor() *DevMonitor {
	return &DevMonitor{
		staged:    make(map[int]int),
		published: make(map[int]int),
	}
}

func (dev *DevMonitor) Attach(deviation int) {
	if deviation <= 0 {
		log.Panicf("cannot attach non-positive deviation %d", deviation)
	}
	dev.staged[deviation]++
	dev.stagedSum += deviation
	dev.touched = append(dev.touched, deviation)
}

func (dev *DevMonitor) Detach(deviation int) {
	count, ok := dev.staged[deviation]
	if !ok || deviation <= 0 {
		log.Panicf("cannot detach deviation %d: it is not present", deviation)
	}
	if count == 1 {
		delete(dev.staged, deviation)
	} else {
		dev.staged[deviation] = count - 1
	}
	dev.stagedSum -= deviation
	dev.touched = append(dev.touched, deviation)
}

// Update replaces one occurrence of oldDeviation by newDeviation; zero stands for "no occurrence"
func (dev *DevMonitor) Update(oldDeviation, newDeviation int) {
	if oldDeviation == newDeviation {
		return
	}
	if oldDeviation > 0 {
		dev.Detach(oldDeviation)
	}
	if newDeviation > 0 {
		dev.Attach(newDeviation)
	}
}

// Flush publishes the staged multiset and reports whether the published one changed
func (dev *DevMonitor) Flush() bool {
	changed := false
	for _, deviation := range dev.touched {
		staged, published := dev.staged[deviation], dev.published[deviation]
		if staged == published {
			continue
		}
		changed = true
		if staged == 0 {
			delete(dev.published, deviation)
		} else {
			dev.published[deviation] = staged
		}
	}
	dev.touched = dev.touched[:0]
	dev.publishedSum = dev.stagedSum
	return changed
}

// Sum of all published occurrences
func (dev *DevMonitor) Sum() int {
	return dev.publishedSum
}

// Count of published occurrences
func (dev *DevMonitor) Count() int {
	count := 0
	for _, occurrences := range dev.published {
		count += occurrences
	}
	return count
}

// Values expands the published multiset in ascending order
func (dev *DevMonitor) Values() []int {
	values := make([]int, 0, len(dev.published))
	for _, deviation := range slices.Sorted(maps.Keys(dev.published)) {
		for range dev.published[deviation] {
			values = append(values, deviation)
		}
	}
	return values
}

func (dev *DevMonitor) Reset() {
	clear(dev.staged)
	clear(dev.published)
	dev.stagedSum, dev.publishedSum = 0, 0
	dev.touched = dev.touched[:0]
}

func (dev *DevMonitor) Clone() *DevMonitor {
	return &DevMonitor{
		staged:       maps.Clone(dev.staged),
		published:    maps.Clone(dev.published),
		stagedSum:    dev.stagedSum,
		publishedSum: dev.publishedSum,
		touched:      slices.Clone(dev.touched),
	}
}
