package question

// Record is one parsed question block, as stored.
type Record struct {
	ID            int64  `json:"id,omitempty" yaml:"id,omitempty"`
	QuestionText  string `json:"question_text" yaml:"question_text"`
	OptionsRaw    string `json:"options" yaml:"options"`
	CorrectAnswer string `json:"correct_answer" yaml:"correct_answer"`
}

// Option is a single answer derived at read time from Record.OptionsRaw.
type Option struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// Item is the payload delivered to the quiz front-end.
type Item struct {
	Question string   `json:"question" yaml:"question"`
	Answers  []Option `json:"answers" yaml:"answers"`
}

// IngestResult summarizes a successful upload.
type IngestResult struct {
	Filename      string `json:"filename"`
	StoredPath    string `json:"stored_path,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// UpdateEvent is published after a batch of questions is committed.
type UpdateEvent struct {
	Filename      string `json:"filename"`
	QuestionCount int    `json:"question_count"`
	Total         int64  `json:"total"`
}
