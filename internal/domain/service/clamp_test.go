package service

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{in: 120, want: 300},
		{in: 300, want: 300},
		{in: 620, want: 620},
		{in: 850, want: 850},
		{in: 910, want: 850},
	}
	for _, tt := range tests {
		if got := clamp(tt.in, 300, 850); got != tt.want {
			t.Errorf("clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
