package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

func (cli *commandLine) reconcile() error {
	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	changed := store.ReconcileChapterTotals()
	fmt.Fprintf(cli.out, "%d chapter(s) updated\n", changed)
	return nil
}

// readQuestions accepts either a bare list of questions or {"questions": [...]}.
func readQuestions(path string) ([]study.NewQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var questions []study.NewQuestion
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &questions)
	} else {
		var wrapped struct {
			Questions []study.NewQuestion `json:"questions"`
		}
		err = json.Unmarshal(data, &wrapped)
		questions = wrapped.Questions
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return questions, nil
}

func (cli *commandLine) importQuestions(path string) error {
	questions, err := readQuestions(path)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return errors.Errorf("%s: no questions provided", path)
	}

	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	created, err := store.CreateBulkQuestions(context.Background(), questions)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Successfully imported %d questions\n", len(created))
	return nil
}
