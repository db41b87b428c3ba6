package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gokatarajesh/quiz-uploader/internal/question"
)

func run(in io.Reader, out io.Writer, format string, quiz bool) error {
	records, err := question.Parse(in)
	if err != nil {
		return err
	}
	if records == nil {
		records = []question.Record{}
	}

	var payload interface{} = records
	if quiz {
		payload = question.BuildQuiz(records)
	}
	return render(out, format, payload)
}

func render(out io.Writer, format string, payload interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
