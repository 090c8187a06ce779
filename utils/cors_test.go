package utils

import "testing"

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost", true},
		{"http://localhost:5173", true},
		{"https://localhost:3000", true},

		{"http://192.168.0.10", true},
		{"http://10.1.2.3:8686", true},
		{"http://172.16.0.1", true},
		{"http://127.0.0.1:3000", true},
		{"http://169.254.1.1", true},

		{"http://htpc.local", true},
		{"http://mediabox:8686", true},

		{"http://example.com", false},
		{"https://themoviedb.org", false},
		{"http://8.8.8.8", false},

		{"", false},
		{"not-a-url", false},
	}

	for _, tt := range tests {
		if got := IsAllowedOrigin(tt.origin); got != tt.allowed {
			t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.allowed)
		}
	}
}
