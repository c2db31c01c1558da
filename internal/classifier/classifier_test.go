package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeMath(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{msg: "2+2", want: true},
		{msg: "what is 12 * (3 - 1)?", want: true},
		{msg: "احسب 15 و 3", want: false},
		{msg: "please calculate 2 -", want: true},
		{msg: "والناتج 4 -", want: true},
		{msg: "٥ × ٣", want: true},
		{msg: "please calculate 7 and 8", want: false},
		{msg: "متى يبدأ الفصل يوم الجمعة 5 مارس؟", want: false},
		{msg: "اشرح المرحلة 3 من الدرس", want: false},
		{msg: "in 1914 the empire was in troubled dynasty times", want: false},
		{msg: "sometimes 3 is enough", want: false},
		{msg: "solve for the area", want: false},
		{msg: "hello there", want: false},
		{msg: "my phone is 555 1234", want: false},
		{msg: "grade 5 history homework", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.msg, func(t *testing.T) {
			assert.Equal(t, tc.want, LooksLikeMath(tc.msg))
		})
	}
}

func TestExtractExpression(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{msg: "what is 12 * (3 - 1)?", want: "12 * (3 - 1)"},
		{msg: "٥ × ٣", want: "5 * 3"},
		{msg: "no numbers", want: ""},
		{msg: "احسب 2^10", want: "2^10"},
	}

	for _, tc := range tests {
		t.Run(tc.msg, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractExpression(tc.msg))
		})
	}
}

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{word: "احسب", want: true},
		{word: "الناتج", want: true},
		{word: "وحل", want: true},
		{word: "الجمعة", want: false},
		{word: "المرحلة", want: false},
		{word: "times", want: true},
		{word: "sometimes", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, isKeyword(tc.word))
		})
	}
}
