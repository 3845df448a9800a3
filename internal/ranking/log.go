package ranking

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the create_timestamp format of both logs
const TimestampLayout = "2006-01-02 15:04:05"

var (
	entryHeader = []string{"create_timestamp", "player_id", "handle_name"}
	scoreHeader = []string{"create_timestamp", "player_id", "score"}

	// letters, digits and underscore, Unicode aware, 1 to 20 of them
	namePattern = regexp.MustCompile(`^[\p{L}\p{N}_]{1,20}$`)
	digits      = regexp.MustCompile(`^[0-9]+$`)
)

// Entry is a registered player. Re-entries keep the first entry time and take the latest handle.
type Entry struct {
	PlayerID   string
	HandleName string
	EnteredAt  time.Time
}

// Play is one row of the score log
type Play struct {
	PlayedAt time.Time
	PlayerID string
	Score    int
}

// logFormat describes the checks shared by both logs
type logFormat struct {
	header    []string
	columns   error
	badHeader error
}

var (
	entryFormat = logFormat{header: entryHeader, columns: ErrEntryColumns, badHeader: ErrEntryHeader}
	scoreFormat = logFormat{header: scoreHeader, columns: ErrScoreColumns, badHeader: ErrScoreHeader}
)

// readRows validates the header, then hands every data row to each in file order.
// Blank lines are rows without columns and fail the column check.
func readRows(r io.Reader, format logFormat, each func(row []string) error) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	// column count is checked here to report the right message
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return format.badHeader
	}
	if line, _ := reader.FieldPos(0); line != 1 || !slices.Equal(header, format.header) {
		return format.badHeader
	}

	next := lastLine(reader, header) + 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			if next <= countLines(data) {
				return format.columns
			}
			return nil
		}
		if err != nil {
			return format.columns
		}
		// the reader skips empty lines
		if line, _ := reader.FieldPos(0); line > next {
			return format.columns
		}
		if len(row) != len(format.header) {
			return format.columns
		}
		if err := each(row); err != nil {
			return err
		}
		next = lastLine(reader, row) + 1
	}
}

// lastLine is the line the record just read ends on
func lastLine(reader *csv.Reader, row []string) int {
	last := len(row) - 1
	line, _ := reader.FieldPos(last)
	return line + strings.Count(row[last], "\n")
}

func countLines(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func parseTimestamp(value string, invalid error) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Time{}, invalid
	}
	return t, nil
}

// ReadEntries validates an entry log and returns the players by id
func ReadEntries(r io.Reader) (map[string]*Entry, error) {
	entries := make(map[string]*Entry)
	err := readRows(r, entryFormat, func(row []string) error {
		enteredAt, err := parseTimestamp(row[0], ErrEntryTimestamp)
		if err != nil {
			return err
		}
		playerID, handle := row[1], row[2]
		if !namePattern.MatchString(playerID) {
			return ErrPlayerID
		}
		if !namePattern.MatchString(handle) {
			return ErrHandleName
		}

		if existing, ok := entries[playerID]; ok {
			existing.HandleName = handle
			return nil
		}
		entries[playerID] = &Entry{PlayerID: playerID, HandleName: handle, EnteredAt: enteredAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadPlays validates a score log and returns its rows in order
func ReadPlays(r io.Reader) ([]Play, error) {
	var plays []Play
	err := readRows(r, scoreFormat, func(row []string) error {
		playedAt, err := parseTimestamp(row[0], ErrScoreTimestamp)
		if err != nil {
			return err
		}
		if !namePattern.MatchString(row[1]) {
			return ErrPlayerID
		}
		if !digits.MatchString(row[2]) {
			return ErrScoreValue
		}
		score, err := strconv.Atoi(row[2])
		if err != nil {
			return ErrScoreValue
		}
		plays = append(plays, Play{PlayedAt: playedAt, PlayerID: row[1], Score: score})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plays, nil
}
