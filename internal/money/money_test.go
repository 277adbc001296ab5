package money

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"2.50", 250, false},
		{"2,50", 250, false},
		{"10", 1000, false},
		{"0.5", 50, false},
		{",5", 50, false},
		{"1234.56", 123456, false},
		{"0", 0, false},
		{"", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"1.234,56", 0, true},
		{"2.505", 0, true},
		{"2.-5", 0, true},
		{"1,+5", 0, true},
		{"0.-5", 0, true},
		{"+2.50", 0, true},
		{"2.5e1", 0, true},
		{"9223372036854775807", 0, true},
		{"92233720368547758.07", 9223372036854775807, false},
		{"92233720368547758.08", 0, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got.Cents() != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got.Cents(), tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{250, "R$ 2,50"},
		{750, "R$ 7,50"},
		{123456, "R$ 1.234,56"},
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{100000000, "R$ 1.000.000,00"},
	}
	for _, tc := range cases {
		if got := FromCents(tc.in).Format(); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMul(t *testing.T) {
	if got := FromCents(250).Mul(3); got.Cents() != 750 {
		t.Fatalf("Mul: got %d, want 750", got.Cents())
	}
}
