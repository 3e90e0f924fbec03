package service_test

import (
	"testing"

	"github.com/mkleist/wortschatz-bot/internal/service"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		canonical string
		want      bool
	}{
		{"exact match", "dog", "dog", true},
		{"case insensitive", "DER", "der", true},
		{"case insensitive umlaut", "äpfel", "Äpfel", true},
		{"surrounding whitespace", "  dog  ", "dog", true},
		{"wrong answer", "cat", "dog", false},
		{"first alternative", "apfel", "Apfel/Äpfel", true},
		{"second alternative", "äpfel", "Apfel/Äpfel", true},
		{"not an alternative", "apfelsaft", "Apfel/Äpfel", false},
		{"alternative with spaces", "the apple", "the apple / an apple", true},
		{"empty submission", "", "dog", false},
		{"empty submission empty canonical", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.IsCorrect(tt.submitted, tt.canonical); got != tt.want {
				t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.submitted, tt.canonical, got, tt.want)
			}
		})
	}
}
