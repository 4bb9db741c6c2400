package usecase

import (
	"math"
	"sort"
	"time"
)

// Windows are the reporting periods derived from one reference instant. All
// boundaries are UTC.
type Windows struct {
	Now   time.Time
	Today time.Time
	Week  time.Time
	Month time.Time
}

// WindowsAt computes today (midnight), week (Monday midnight) and month
// (first of month) starts for now.
func WindowsAt(now time.Time) Windows {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	return Windows{
		Now:   now,
		Today: today,
		Week:  today.AddDate(0, 0, -sinceMonday),
		Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

// sumAbs adds |v| for every present value.
func sumAbs(values []*float64) float64 {
	var total float64
	for _, v := range values {
		if v != nil {
			total += math.Abs(*v)
		}
	}
	return total
}

// average is the mean over present values, 0 when none are present.
func average(values []*float64) float64 {
	var (
		total float64
		n     int
	)
	for _, v := range values {
		if v == nil {
			continue
		}
		total += *v
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// percentage returns part/whole*100, 0 when whole is 0.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GameStat is one row of the top games table.
type GameStat struct {
	GameType string  `json:"game_type"`
	Sessions int64   `json:"sessions"`
	Revenue  float64 `json:"revenue"`
}

type gameSample struct {
	gameType  string
	netResult *float64
}

// topGames groups samples by game type, orders by session count and keeps n.
// Absent results count as 0 in the group total; the total is shown as |sum|.
func topGames(samples []gameSample, n int) []GameStat {
	index := map[string]int{}
	sums := []float64{}
	stats := []GameStat{}
	for _, s := range samples {
		i, ok := index[s.gameType]
		if !ok {
			i = len(stats)
			index[s.gameType] = i
			stats = append(stats, GameStat{GameType: s.gameType})
			sums = append(sums, 0)
		}
		stats[i].Sessions++
		if s.netResult != nil {
			sums[i] += *s.netResult
		}
	}
	for i := range stats {
		stats[i].Revenue = math.Abs(sums[i])
	}
	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].Sessions != stats[b].Sessions {
			return stats[a].Sessions > stats[b].Sessions
		}
		return stats[a].GameType < stats[b].GameType
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
