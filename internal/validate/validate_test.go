package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"01012345678", ""},
		{"010-1234-5678", ""},
		{" 010 1234 5678 ", ""},
		{"", MsgPhoneRequired},
		{"   ", MsgPhoneRequired},
		{"010-12a4-5678", MsgPhoneDigits},
		{"+821012345678", MsgPhoneDigits},
		{"02-123-4567", MsgPhonePrefix},
		{"01112345678", MsgPhonePrefix},
		{"0101234567", MsgPhoneLength},
		{"010123456789", MsgPhoneLength},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Phone(tt.input), "Phone(%q)", tt.input)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", ""},
		{" user.name+tag@shop.co.kr ", ""},
		{"", MsgEmailRequired},
		{"user", MsgEmailFormat},
		{"user@", MsgEmailFormat},
		{"@example.com", MsgEmailFormat},
		{"user@@example.com", MsgEmailFormat},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.input), "Email(%q)", tt.input)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"홍길동", ""},
		{"Kim Minji", ""},
		{"이", MsgNameLength},
		{"", MsgNameRequired},
		{"가나다라마바사아자차카타파하가나다라마바사", MsgNameLength},
		{"홍길동1", MsgNameChars},
		{"ㅎㄱㄷ", MsgNameChars},
		{"Kim  Minji", MsgNameChars},
		{"Jöhn", MsgNameChars},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.input), "Name(%q)", tt.input)
	}
}
