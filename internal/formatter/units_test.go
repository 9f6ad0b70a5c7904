package formatter

import "testing"

func TestUnits(t *testing.T) {
	t.Run("FormatSize", func(t *testing.T) {
		tests := []struct {
			in   int64
			want string
		}{
			{-1, "?"},
			{0, "0 B"},
			{1023, "1023 B"},
			{1024, "1.0 KiB"},
			{1536, "1.5 KiB"},
			{1000 * 1024 * 1024, "1000.0 MiB"},
			{5 * 1024 * 1024 * 1024, "5.0 GiB"},
		}
		for _, tt := range tests {
			if got := FormatSize(tt.in); got != tt.want {
				t.Errorf("FormatSize(%d): expected %s, got %s", tt.in, tt.want, got)
			}
		}
	})

	t.Run("FormatRate", func(t *testing.T) {
		if got := FormatRate(0); got != "-" {
			t.Errorf("expected -, got %s", got)
		}
		if got := FormatRate(2048); got != "2.0 KiB/s" {
			t.Errorf("expected 2.0 KiB/s, got %s", got)
		}
	})

	t.Run("FormatETA", func(t *testing.T) {
		tests := []struct {
			in   int64
			want string
		}{
			{-1, "∞"},
			{0, "-"},
			{42, "42s"},
			{125, "2m 5s"},
			{3 * 3600, "3h 0m"},
			{26 * 3600, "1d 2h"},
		}
		for _, tt := range tests {
			if got := FormatETA(tt.in); got != tt.want {
				t.Errorf("FormatETA(%d): expected %s, got %s", tt.in, tt.want, got)
			}
		}
	})

	t.Run("FormatPercent", func(t *testing.T) {
		tests := []struct {
			in   float64
			want string
		}{
			{0, "0.0%"},
			{0.4567, "45.7%"},
			{1, "100.0%"},
			{1.5, "100.0%"},
			{-0.2, "0.0%"},
		}
		for _, tt := range tests {
			if got := FormatPercent(tt.in); got != tt.want {
				t.Errorf("FormatPercent(%f): expected %s, got %s", tt.in, tt.want, got)
			}
		}
	})
}
