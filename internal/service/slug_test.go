package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple title", title: "My First Awesome Post", want: "my-first-awesome-post"},
		{name: "updated title", title: "Updated Awesome Title", want: "updated-awesome-title"},
		{name: "uppercase", title: "HELLO WORLD", want: "hello-world"},
		{name: "punctuation runs collapse", title: "Symbols & punctuation: a test!", want: "symbols-punctuation-a-test"},
		{name: "repeated separators", title: "Titles with   odd   spacing", want: "titles-with-odd-spacing"},
		{name: "leading and trailing junk", title: "  --Hello--  ", want: "hello"},
		{name: "numbers kept", title: "Numbers 123 in titles", want: "numbers-123-in-titles"},
		{name: "only junk", title: "!!!", want: ""},
		{name: "empty", title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	title := "A Title, Slugified Twice"
	assert.Equal(t, Slugify(title), Slugify(title))
}
