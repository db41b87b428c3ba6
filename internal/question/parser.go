package question

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line prefixes recognized by the parser.
const (
	PrefixQuestion = "Question:"
	PrefixOptions  = "Options:"
	PrefixCorrect  = "Correct Answer:"
)

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 1 << 20

// Parse reads a question file and returns its records in declaration order.
//
// Blocks start at a "Question:" line and collect the following "Options:" and
// "Correct Answer:" lines. Lines before the first question and unrecognized
// lines are ignored. Every "Question:" marker yields one record, and missing
// fields are left empty.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	var (
		records []Record
		current *Record
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, PrefixQuestion):
			if current != nil {
				records = append(records, *current)
			}
			current = &Record{QuestionText: valueAfterColon(line)}
		case strings.HasPrefix(line, PrefixOptions):
			if current != nil {
				current.OptionsRaw = valueAfterColon(line)
			}
		case strings.HasPrefix(line, PrefixCorrect):
			if current != nil {
				current.CorrectAnswer = valueAfterColon(line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	if current != nil {
		records = append(records, *current)
	}
	return records, nil
}

func valueAfterColon(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}
