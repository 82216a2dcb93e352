package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Robotics Expo", Text("  <b>Robotics</b> Expo "))
	assert.Equal(t, "", Text(`<script>alert("x")</script>`))
	assert.Equal(t, "Q&A session", Text("Q&A session"))
}

func TestContainsMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "  Robotics Expo  ", want: false},
		{input: "Q&A: is 5 > 3?", want: false},
		{input: `Say "hi" at 10 o'clock`, want: false},
		{input: "https://cdn.example.com/a.png?w=1&h=2", want: false},
		{input: "<b>Robotics</b> Expo", want: true},
		{input: `<img src=x onerror=alert(1)>`, want: true},
		{input: "if a<b and c>d", want: true},
		{input: "Generics: List<T> and Map<K,V> in Java", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsMarkup(tt.input))
		})
	}
}
