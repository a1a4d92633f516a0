package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nurpe/busfleet/internal/model"
)

// TopLimit caps every ranked list in a report.
const TopLimit = 10

// counter counts occurrences per integer id and remembers the order in which
// ids were first seen, so ranking ties resolve deterministically.
type counter struct {
	index   map[uint]int
	entries []model.CountEntry
}

func newCounter() *counter {
	return &counter{index: make(map[uint]int)}
}

func (c *counter) add(id uint, label string) {
	if pos, ok := c.index[id]; ok {
		c.entries[pos].Count++
		if c.entries[pos].Label == "" {
			c.entries[pos].Label = label
		}
		return
	}
	c.entries = append(c.entries, model.CountEntry{ID: id, Label: label, Count: 1})
	c.index[id] = len(c.entries) - 1
}

// top returns at most n entries by count descending, stable on ties.
func (c *counter) top(n int) []model.CountEntry {
	return rank(c.entries, n)
}

func rank(entries []model.CountEntry, n int) []model.CountEntry {
	sorted := make([]model.CountEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// usageCounter tracks total vs in-use per group name in first-seen order.
type usageCounter struct {
	index   map[string]int
	entries []model.GroupUsage
}

func newUsageCounter() *usageCounter {
	return &usageCounter{index: make(map[string]int)}
}

func (u *usageCounter) add(name string, inUse bool) {
	pos, ok := u.index[name]
	if !ok {
		u.entries = append(u.entries, model.GroupUsage{Name: name})
		pos = len(u.entries) - 1
		u.index[name] = pos
	}
	u.entries[pos].Total++
	if inUse {
		u.entries[pos].InUse++
	}
}

func (u *usageCounter) list() []model.GroupUsage {
	if u.entries == nil {
		return []model.GroupUsage{}
	}
	return u.entries
}

// monthTrend buckets dates by calendar year and month.
type monthTrend map[time.Time]int

func (m monthTrend) add(d model.Date) {
	if !d.Valid {
		return
	}
	y, mo, _ := d.Time.Date()
	m[time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC)]++
}

func (m monthTrend) points() []model.TrendPoint {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	points := make([]model.TrendPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, model.TrendPoint{Label: k.Format("Jan 2006"), Count: m[k]})
	}
	return points
}

// FormatPercent renders num/den as a percentage with two decimals and
// returns "0%" when den is zero.
func FormatPercent(num, den int) string {
	if den == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(num)/float64(den)*100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func labelOr(label, kind string, id uint) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("%s #%d", kind, id)
}
