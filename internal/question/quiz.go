package question

import "strings"

// BuildQuiz converts stored records into the quiz delivery shape.
func BuildQuiz(records []Record) []Item {
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		items = append(items, Item{
			Question: rec.QuestionText,
			Answers:  Options(rec),
		})
	}
	return items
}

// Options splits a record's comma-separated options and flags every option
// equal to the correct answer. Both sides are compared trimmed.
func Options(rec Record) []Option {
	correct := strings.TrimSpace(rec.CorrectAnswer)
	tokens := strings.Split(rec.OptionsRaw, ",")
	opts := make([]Option, 0, len(tokens))
	for _, tok := range tokens {
		text := strings.TrimSpace(tok)
		opts = append(opts, Option{Text: text, Correct: text == correct})
	}
	return opts
}
