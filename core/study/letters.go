package study

import (
	"strings"

	"github.com/pkg/errors"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

var (
	ErrInvalidAnswerLetter = errors.New("correct answer must be one of A, B, C or D")
	ErrInvalidAnswerIndex  = errors.New("correct answer index must be between 0 and 3")

	answerLetters = [OptionCount]string{"A", "B", "C", "D"}
)

// ParseAnswerLetter translates "A".."D" (case and surrounding spaces ignored) into 0..3.
func ParseAnswerLetter(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	for i, l := range answerLetters {
		if l == letter {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidAnswerLetter, "got %q", letter)
}

// AnswerLetter translates 0..3 into "A".."D".
func AnswerLetter(index int) (string, error) {
	if index < 0 || index >= OptionCount {
		return "", errors.Wrapf(ErrInvalidAnswerIndex, "got %d", index)
	}
	return answerLetters[index], nil
}
