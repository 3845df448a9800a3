package ranking

import (
	"cmp"
	"encoding/csv"
	"io"
	"math"
	"slices"
	"strconv"
	"time"
)

// Mode selects how plays are turned into a score
type Mode string

const (
	ModeHighScore Mode = "highscore"
	ModeAverage   Mode = "average"
)

const (
	// DefaultMinPlays is the number of plays a player needs to appear in an average ranking
	DefaultMinPlays = 10
	// DefaultThreshold is the last rank printed
	DefaultThreshold = 10
)

// ParseMode validates the aggregation mode argument
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHighScore, ModeAverage:
		return Mode(s), nil
	}
	return "", ErrInvalidMode
}

// Stats accumulates the plays of one player
type Stats struct {
	Plays int
	Best  int
	Total int
}

// Average is the mean score rounded half to even
func (s Stats) Average() int {
	if s.Plays == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(s.Total) / float64(s.Plays)))
}

// Aggregate collects the plays of entered players. Plays before the entry time are ignored.
func Aggregate(entries map[string]*Entry, plays []Play) map[string]*Stats {
	stats := make(map[string]*Stats)
	for _, p := range plays {
		entry, ok := entries[p.PlayerID]
		if !ok || p.PlayedAt.Before(entry.EnteredAt) {
			continue
		}
		s, ok := stats[p.PlayerID]
		if !ok {
			s = &Stats{Best: p.Score}
			stats[p.PlayerID] = s
		}
		s.Plays++
		s.Total += p.Score
		s.Best = max(s.Best, p.Score)
	}
	return stats
}

// Row is one line of the ranking
type Row struct {
	Rank       int
	PlayerID   string
	HandleName string
	Score      int
}

// Options tunes the ranking
type Options struct {
	MinPlays  int
	Threshold int
}

// DefaultOptions returns the competition rules
func DefaultOptions() Options {
	return Options{MinPlays: DefaultMinPlays, Threshold: DefaultThreshold}
}

type candidate struct {
	entry *Entry
	score int
}

// Rank orders players by score desc, entry time asc, player id asc.
// Equal scores share a rank and the next rank skips; ranks past the threshold are cut.
func Rank(entries map[string]*Entry, stats map[string]*Stats, mode Mode, opts Options) []Row {
	candidates := make([]candidate, 0, len(stats))
	for id, s := range stats {
		switch mode {
		case ModeAverage:
			if s.Plays < opts.MinPlays {
				continue
			}
			candidates = append(candidates, candidate{entry: entries[id], score: s.Average()})
		default:
			candidates = append(candidates, candidate{entry: entries[id], score: s.Best})
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := compareTime(a.entry.EnteredAt, b.entry.EnteredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.entry.PlayerID, b.entry.PlayerID)
	})

	var rows []Row
	rank := 0
	for i, c := range candidates {
		if i == 0 || c.score != candidates[i-1].score {
			rank = i + 1
		}
		if rank > opts.Threshold {
			break
		}
		rows = append(rows, Row{Rank: rank, PlayerID: c.entry.PlayerID, HandleName: c.entry.HandleName, Score: c.score})
	}
	return rows
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Write prints the ranking as CSV with a header line
func Write(w io.Writer, rows []Row) error {
	out := csv.NewWriter(w)
	if err := out.Write([]string{"rank", "player_id", "handle_name", "score"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{strconv.Itoa(r.Rank), r.PlayerID, r.HandleName, strconv.Itoa(r.Score)}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
