package ranking

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Run executes `<mode> <entry_log.csv> <score_log.csv>` and writes the ranking to stdout.
// Returned errors carry the message to print on stderr.
func Run(args []string, stdout io.Writer) error {
	if len(args) != 3 {
		return ErrArgumentCount
	}

	mode, err := ParseMode(args[0])
	if err != nil {
		return err
	}

	entries, err := readFile(args[1], ErrEntryNotFound, ReadEntries)
	if err != nil {
		return err
	}
	plays, err := readFile(args[2], ErrScoreNotFound, ReadPlays)
	if err != nil {
		return err
	}

	rows := Rank(entries, Aggregate(entries, plays), mode, DefaultOptions())
	return Write(stdout, rows)
}

func readFile[T any](path string, notFound error, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return zero, notFound
	}
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()
	return read(f)
}
