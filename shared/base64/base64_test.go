package base64_test

import (
	"testing"

	"hotelbooking/shared/base64"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "data:image/png;base64,iVBORw0KGgo=", want: "image/png"},
		{input: "data:IMAGE/JPEG;base64,/9j/4AAQ", want: "image/jpeg"},
		{input: "data:image/webp;name=front.webp;base64,UklGR", want: "image/webp"},
		{input: "data:text/plain,hello", want: ""},
		{input: "image/png;base64,iVBORw0KGgo=", want: ""},
		{input: "data:image/png;base64", want: ""},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, base64.GetContentType(tt.input))
		})
	}
}

func TestDecodedSize(t *testing.T) {
	assert.Equal(t, 11, base64.DecodedSize("data:text/plain;base64,SGVsbG8gV29ybGQ="))
	assert.Equal(t, 3, base64.DecodedSize("data:image/png;base64,AAAA"))
	assert.Equal(t, 0, base64.DecodedSize("data:image/png;base64,"))
	assert.Equal(t, -1, base64.DecodedSize("not a data uri"))
}
