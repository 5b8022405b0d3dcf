package propensity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Epsilon is the floor applied to computed propensities so a title that
// has appeared at least once is never reported as exactly zero-probability.
const Epsilon = 0.01

// Compute scans every event in the log at path and returns, for each title
// that has ever been served, its propensity: appearances / total events,
// floored at Epsilon.
func Compute(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("propensity: open log: %w", err)
	}
	defer f.Close()

	counts := make(map[string]int)
	var total int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		total++
		seen := make(map[string]bool, len(ev.Entries))
		for _, e := range ev.Entries {
			if seen[e.Title] {
				continue
			}
			seen[e.Title] = true
			counts[e.Title]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("propensity: scan log: %w", err)
	}

	out := make(map[string]float64, len(counts))
	if total == 0 {
		return out, nil
	}
	for title, n := range counts {
		p := float64(n) / float64(total)
		if p < Epsilon {
			p = Epsilon
		}
		out[title] = p
	}
	return out, nil
}
