package validate

import "testing"

func TestCleanCountry(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"US", "US"},
		{"us", "US"},
		{"United Kingdom", "GB"},
		{"UK", "GB"},
		{"Deutschland", "DE"},
		{"GERMANY", "DE"},
		{"Brasil", "BR"},
		{"Austrialia", "AU"}, // misspelling seen in real exports
		{"Kanada", "CA"},
		{"Mejico", "MX"},
		{"XX", "XX"},
		{"Unknown Place", "XX"},
		{"", "XX"},
		{"U", "XX"},
		{"USA", "US"},
	}

	for _, tt := range tests {
		if got := CleanCountry(tt.input); got != tt.want {
			t.Errorf("CleanCountry(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidCountry(t *testing.T) {
	if !IsValidCountry("DE") {
		t.Error("expected DE to be valid")
	}
	if IsValidCountry("Germany") {
		t.Error("full names are not valid pre-cleaning")
	}
	if IsValidCountry("") {
		t.Error("empty is not valid")
	}
}
