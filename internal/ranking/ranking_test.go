package ranking

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReadEntries(t *testing.T) {
	log := "create_timestamp,player_id,handle_name\n" +
		"2021-01-01 12:00:00,player0001,alice\n" +
		"2021-01-02 12:00:00,player0002,ボブ\n" +
		"2021-01-03 12:00:00,player0001,alice_2\n"

	entries, err := ReadEntries(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice_2", entries["player0001"].HandleName)
	assert.Equal(t, ts("2021-01-01 12:00:00"), entries["player0001"].EnteredAt)
	assert.Equal(t, "ボブ", entries["player0002"].HandleName)
}

func TestReadEntries_Invalid(t *testing.T) {
	tests := []struct {
		name string
		log  string
		want error
	}{
		{"empty file", "", ErrEntryHeader},
		{"wrong header", "player_id,handle_name\n", ErrEntryHeader},
		{"missing column", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1\n", ErrEntryColumns},
		{"extra column", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,a,b\n", ErrEntryColumns},
		{"bad timestamp", "create_timestamp,player_id,handle_name\n2021/01/01 12:00:00,p1,a\n", ErrEntryTimestamp},
		{"impossible date", "create_timestamp,player_id,handle_name\n2021-02-30 12:00:00,p1,a\n", ErrEntryTimestamp},
		{"player id too long", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00," + strings.Repeat("p", 21) + ",a\n", ErrPlayerID},
		{"player id symbol", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p-1,a\n", ErrPlayerID},
		{"empty handle", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,\n", ErrHandleName},
		{"handle with space", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,a b\n", ErrHandleName},
		{"player id starts with combining mark", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,\u0301x,a\n", ErrPlayerID},
		{"handle with connector punctuation", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,a\u203fb\n", ErrHandleName},
		{"blank line between rows", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,a\n\n2021-01-01 12:00:00,p2,b\n", ErrEntryColumns},
		{"blank line at the end", "create_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,a\n\n", ErrEntryColumns},
		{"blank line before header", "\ncreate_timestamp,player_id,handle_name\n2021-01-01 12:00:00,p1,a\n", ErrEntryHeader},
		{"bad row before blank line", "create_timestamp,player_id,handle_name\n2021-01-01,p1,a\n\n", ErrEntryTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEntries(strings.NewReader(tt.log))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadPlays(t *testing.T) {
	log := "create_timestamp,player_id,score\n" +
		"2021-01-01 12:00:00,player0001,100\n" +
		"2021-01-01 12:05:00,player0002,0\n"

	plays, err := ReadPlays(strings.NewReader(log))
	require.NoError(t, err)
	assert.Equal(t, []Play{
		{PlayedAt: ts("2021-01-01 12:00:00"), PlayerID: "player0001", Score: 100},
		{PlayedAt: ts("2021-01-01 12:05:00"), PlayerID: "player0002", Score: 0},
	}, plays)
}

func TestReadPlays_Invalid(t *testing.T) {
	header := "create_timestamp,player_id,score\n"
	tests := []struct {
		name string
		log  string
		want error
	}{
		{"wrong header", "create_timestamp,player_id,handle_name\n", ErrScoreHeader},
		{"missing column", header + "2021-01-01 12:00:00,p1\n", ErrScoreColumns},
		{"bad timestamp", header + "2021-01-01T12:00:00,p1,10\n", ErrScoreTimestamp},
		{"bad player id", header + "2021-01-01 12:00:00,p!,10\n", ErrPlayerID},
		{"negative score", header + "2021-01-01 12:00:00,p1,-1\n", ErrScoreValue},
		{"fractional score", header + "2021-01-01 12:00:00,p1,1.5\n", ErrScoreValue},
		{"empty score", header + "2021-01-01 12:00:00,p1,\n", ErrScoreValue},
		{"player id with connector punctuation", header + "2021-01-01 12:00:00,a\u203fb,10\n", ErrPlayerID},
		{"blank line between rows", header + "2021-01-01 12:00:00,p1,10\n\n2021-01-01 12:00:00,p2,20\n", ErrScoreColumns},
		{"blank line at the end", header + "2021-01-01 12:00:00,p1,10\n\n", ErrScoreColumns},
		{"blank line before bad row", header + "\n2021-01-01 12:00:00,p1,-1\n", ErrScoreColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPlays(strings.NewReader(tt.log))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("highscore")
	require.NoError(t, err)
	assert.Equal(t, ModeHighScore, mode)

	mode, err = ParseMode("average")
	require.NoError(t, err)
	assert.Equal(t, ModeAverage, mode)

	_, err = ParseMode("HIGHSCORE")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestAggregate(t *testing.T) {
	entries := map[string]*Entry{
		"p1": {PlayerID: "p1", HandleName: "a", EnteredAt: ts("2021-01-01 12:00:00")},
	}
	plays := []Play{
		{PlayedAt: ts("2021-01-01 11:59:59"), PlayerID: "p1", Score: 1000},
		{PlayedAt: ts("2021-01-01 12:00:00"), PlayerID: "p1", Score: 10},
		{PlayedAt: ts("2021-01-02 12:00:00"), PlayerID: "p1", Score: 30},
		{PlayedAt: ts("2021-01-02 12:00:00"), PlayerID: "unknown", Score: 500},
	}

	stats := Aggregate(entries, plays)
	require.Len(t, stats, 1)
	assert.Equal(t, Stats{Plays: 2, Best: 30, Total: 40}, *stats["p1"])
}

func TestStats_Average(t *testing.T) {
	assert.Equal(t, 0, Stats{}.Average())
	assert.Equal(t, 3, Stats{Plays: 3, Total: 10}.Average())
	// halves round to even
	assert.Equal(t, 2, Stats{Plays: 10, Total: 25}.Average())
	assert.Equal(t, 4, Stats{Plays: 10, Total: 35}.Average())
	assert.Equal(t, 3, Stats{Plays: 3, Total: 8}.Average())
}

func TestRank_OrderAndTies(t *testing.T) {
	entries := map[string]*Entry{
		"p1": {PlayerID: "p1", HandleName: "one", EnteredAt: ts("2021-01-02 00:00:00")},
		"p2": {PlayerID: "p2", HandleName: "two", EnteredAt: ts("2021-01-01 00:00:00")},
		"p3": {PlayerID: "p3", HandleName: "three", EnteredAt: ts("2021-01-01 00:00:00")},
		"p4": {PlayerID: "p4", HandleName: "four", EnteredAt: ts("2021-01-01 00:00:00")},
	}
	stats := map[string]*Stats{
		"p1": {Plays: 1, Best: 50, Total: 50},
		"p2": {Plays: 1, Best: 50, Total: 50},
		"p3": {Plays: 1, Best: 90, Total: 90},
		"p4": {Plays: 1, Best: 10, Total: 10},
	}

	rows := Rank(entries, stats, ModeHighScore, DefaultOptions())
	assert.Equal(t, []Row{
		{Rank: 1, PlayerID: "p3", HandleName: "three", Score: 90},
		{Rank: 2, PlayerID: "p2", HandleName: "two", Score: 50},
		{Rank: 2, PlayerID: "p1", HandleName: "one", Score: 50},
		{Rank: 4, PlayerID: "p4", HandleName: "four", Score: 10},
	}, rows)
}

func TestRank_Threshold(t *testing.T) {
	entries := map[string]*Entry{}
	stats := map[string]*Stats{}
	// p01..p09 score 100-i, p10..p12 tie at 50, p13 below
	for i := 1; i <= 13; i++ {
		id := fmt.Sprintf("p%02d", i)
		score := 100 - i
		if i >= 10 && i <= 12 {
			score = 50
		}
		if i == 13 {
			score = 1
		}
		entries[id] = &Entry{PlayerID: id, HandleName: id, EnteredAt: ts("2021-01-01 00:00:00")}
		stats[id] = &Stats{Plays: 1, Best: score, Total: score}
	}

	rows := Rank(entries, stats, ModeHighScore, DefaultOptions())
	require.Len(t, rows, 12)
	for _, r := range rows[9:] {
		assert.Equal(t, 10, r.Rank)
		assert.Equal(t, 50, r.Score)
	}
}

func TestRank_AverageNeedsMinPlays(t *testing.T) {
	entries := map[string]*Entry{
		"p1": {PlayerID: "p1", HandleName: "a", EnteredAt: ts("2021-01-01 00:00:00")},
		"p2": {PlayerID: "p2", HandleName: "b", EnteredAt: ts("2021-01-01 00:00:00")},
	}
	stats := map[string]*Stats{
		"p1": {Plays: 10, Best: 100, Total: 255},
		"p2": {Plays: 9, Best: 900, Total: 8100},
	}

	rows := Rank(entries, stats, ModeAverage, DefaultOptions())
	assert.Equal(t, []Row{{Rank: 1, PlayerID: "p1", HandleName: "a", Score: 26}}, rows)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Row{{Rank: 1, PlayerID: "p1", HandleName: "a", Score: 10}})
	require.NoError(t, err)
	assert.Equal(t, "rank,player_id,handle_name,score\n1,p1,a,10\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "rank,player_id,handle_name,score\n", buf.String())
}

func writeLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	entry := writeLog(t, dir, "entry.csv",
		"create_timestamp,player_id,handle_name",
		"2021-01-01 12:00:00,player0001,alice",
		"2021-01-01 12:00:00,player0002,bob",
		"2021-01-05 12:00:00,player0001,alice2",
	)
	score := writeLog(t, dir, "score.csv",
		"create_timestamp,player_id,score",
		"2021-01-01 11:00:00,player0002,9999",
		"2021-01-01 13:00:00,player0001,300",
		"2021-01-02 13:00:00,player0002,300",
		"2021-01-03 13:00:00,player0003,500",
	)

	var out bytes.Buffer
	require.NoError(t, Run([]string{"highscore", entry, score}, &out))
	assert.Equal(t, "rank,player_id,handle_name,score\n"+
		"1,player0001,alice2,300\n"+
		"1,player0002,bob,300\n", out.String())

	out.Reset()
	require.NoError(t, Run([]string{"average", entry, score}, &out))
	assert.Equal(t, "rank,player_id,handle_name,score\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	entry := writeLog(t, dir, "entry.csv", "create_timestamp,player_id,handle_name")
	score := writeLog(t, dir, "score.csv", "create_timestamp,player_id,score")
	badScore := writeLog(t, dir, "bad.csv", "timestamp,player_id,score")
	missing := filepath.Join(dir, "missing.csv")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no arguments", nil, ErrArgumentCount},
		{"too many arguments", []string{"highscore", entry, score, score}, ErrArgumentCount},
		{"invalid mode", []string{"best", entry, score}, ErrInvalidMode},
		{"missing entry log", []string{"highscore", missing, score}, ErrEntryNotFound},
		{"missing score log", []string{"average", entry, missing}, ErrScoreNotFound},
		{"invalid score log", []string{"highscore", entry, badScore}, ErrScoreHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(tt.args, &out)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_SampleSuite(t *testing.T) {
	root := filepath.Join("..", "..", "test")
	entry := filepath.Join(root, "in", "game_entry_log.csv")
	score := filepath.Join(root, "in", "game_score_log.csv")

	for _, mode := range []string{"highscore", "average"} {
		t.Run(mode, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join(root, "out", "basic", mode+".out"))
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, Run([]string{mode, entry, score}, &out))
			assert.Equal(t, string(want), out.String())
		})
	}
}
