// Package validate checks sign-up and order form fields. Each function
// returns "" for valid input and otherwise the message shown under the field.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MsgPhoneRequired = "휴대폰 번호를 입력해주세요."
	MsgPhoneDigits   = "휴대폰 번호는 숫자만 입력해주세요."
	MsgPhonePrefix   = "휴대폰 번호는 010으로 시작해야 합니다."
	MsgPhoneLength   = "휴대폰 번호 11자리를 정확히 입력해주세요."

	MsgEmailRequired = "이메일을 입력해주세요."
	MsgEmailFormat   = "올바른 이메일 형식이 아닙니다."

	MsgNameRequired = "이름을 입력해주세요."
	MsgNameLength   = "이름은 2자 이상 20자 이하로 입력해주세요."
	MsgNameChars    = "이름은 한글 또는 영문만 입력할 수 있습니다."
)

const (
	phonePrefix   = "010"
	phoneLength   = 11
	nameMinLength = 2
	nameMaxLength = 20

	hangulFirst = 0xAC00 // 가
	hangulLast  = 0xD7A3 // 힣
)

var fieldValidator = validator.New()

// Phone accepts mobile numbers with or without hyphens, e.g. 010-1234-5678.
func Phone(value string) string {
	digits := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(value))
	if digits == "" {
		return MsgPhoneRequired
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return MsgPhoneDigits
		}
	}
	if !strings.HasPrefix(digits, phonePrefix) {
		return MsgPhonePrefix
	}
	if len(digits) != phoneLength {
		return MsgPhoneLength
	}
	return ""
}

func Email(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return MsgEmailRequired
	}
	if err := fieldValidator.Var(value, "email"); err != nil {
		return MsgEmailFormat
	}
	return ""
}

// Name allows Hangul syllables and Latin letters, with single spaces between
// words.
func Name(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return MsgNameRequired
	}
	if n := utf8.RuneCountInString(value); n < nameMinLength || n > nameMaxLength {
		return MsgNameLength
	}

	prevSpace := false
	for _, r := range value {
		switch {
		case r == ' ':
			if prevSpace {
				return MsgNameChars
			}
			prevSpace = true
			continue
		case r >= hangulFirst && r <= hangulLast:
		case r < unicode.MaxASCII && unicode.IsLetter(r):
		default:
			return MsgNameChars
		}
		prevSpace = false
	}
	return ""
}
