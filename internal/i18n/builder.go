// Package i18n builds the localized assertion and diagnostic messages shown to challengers.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"ccr/internal/domain"

	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	catalogOnce sync.Once
	sharedCat   *catalog.Builder
	catalogErr  error
)

func sharedCatalog() (*catalog.Builder, error) {
	catalogOnce.Do(func() {
		sharedCat, catalogErr = newCatalog()
	})
	return sharedCat, catalogErr
}

// Builder formats messages for one language
type Builder struct {
	lang    string
	printer *message.Printer
}

// NewBuilder returns a Builder for lang ("ja" or "en")
func NewBuilder(lang string) (*Builder, error) {
	tag, ok := tags[lang]
	if !ok {
		return nil, fmt.Errorf("no messages for language %q", lang)
	}
	cat, err := sharedCatalog()
	if err != nil {
		return nil, fmt.Errorf("build message catalog: %w", err)
	}
	return &Builder{
		lang:    lang,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}, nil
}

// Language returns the language the builder formats for
func (b *Builder) Language() string {
	return b.lang
}

// ErrorZeroStatusCode is the failure for an error case whose program exited with 0
func (b *Builder) ErrorZeroStatusCode() string {
	return b.printer.Sprintf(keyErrorZeroStatusCode)
}

// NonZeroStatusCode is the failure for a normal case whose program exited with code
func (b *Builder) NonZeroStatusCode(code int) string {
	return b.printer.Sprintf(keyNonZeroStatusCode, code)
}

func (b *Builder) Timeout(millis int) string {
	return b.printer.Sprintf(keyTimeout, millis)
}

func (b *Builder) ProcessStartFailed(err error) string {
	return b.printer.Sprintf(keyProcessStart, err.Error())
}

// LineMismatch reports the first differing stdout line (1-based)
func (b *Builder) LineMismatch(line int) string {
	return b.printer.Sprintf(keyLineMismatch, line)
}

func (b *Builder) LineCount(expected, actual int) string {
	return b.printer.Sprintf(keyLineCount, expected, actual)
}

func (b *Builder) ExpectedUnreadable(err error) string {
	return b.printer.Sprintf(keyExpectedUnreadable, err.Error())
}

// Status returns the localized word for a pass or a failure
func (b *Builder) Status(passed bool) string {
	if passed {
		return b.printer.Sprintf(keyPassed)
	}
	return b.printer.Sprintf(keyFailed)
}

// AbnormalEnd renders the console diagnostic for a failed case: the input given,
// the expected output, and what the program actually did.
func (b *Builder) AbnormalEnd(input []string, expected string, result domain.ProcessResult) string {
	var sb strings.Builder
	sb.WriteString(b.printer.Sprintf(keyAbnormalEnd))
	sb.WriteString("\n")
	writeSection(&sb, b.printer.Sprintf(keyLabelInput), strings.Join(input, " "))
	writeSection(&sb, b.printer.Sprintf(keyLabelExpected), expected)
	// Raw code, the printer would group digits.
	writeSection(&sb, b.printer.Sprintf(keyLabelStatus), fmt.Sprint(result.Code))
	writeSection(&sb, b.printer.Sprintf(keyLabelStdout), result.Stdout)
	writeSection(&sb, b.printer.Sprintf(keyLabelStderr), result.Stderr)
	return strings.TrimRight(sb.String(), "\n")
}

func writeSection(sb *strings.Builder, label, body string) {
	sb.WriteString("  ")
	sb.WriteString(label)
	sb.WriteString(":")
	body = strings.TrimRight(body, "\n")
	if body == "" {
		sb.WriteString(" (empty)\n")
		return
	}
	if !strings.Contains(body, "\n") {
		sb.WriteString(" ")
		sb.WriteString(body)
		sb.WriteString("\n")
		return
	}
	sb.WriteString("\n")
	for _, line := range strings.Split(body, "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
