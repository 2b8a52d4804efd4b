package study

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studyhub/core"
)

var (
	answerLetterTag  = "answerletter"
	answerLetterText = ErrInvalidAnswerLetter.Error()
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(answerLetterTag, answerLetterValidation)
	core.RegisterCustomTranslation(validate, translator, answerLetterTag, answerLetterText)
}

// NewValidator returns a validator with the core and study validations registered.
// Errors it returns must be translated with `translator`.
func NewValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func answerLetterValidation(fl validator.FieldLevel) bool {
	_, err := ParseAnswerLetter(fl.Field().String())
	return err == nil
}
