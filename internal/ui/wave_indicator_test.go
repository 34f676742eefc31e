package ui

import "testing"

func TestToRoman(t *testing.T) {
	cases := map[int]string{0: "", 1: "I", 4: "IV", 9: "IX", 10: "X", 14: "XIV", 40: "XL", 1994: "MCMXCIV"}
	for n, want := range cases {
		if got := toRoman(n); got != want {
			t.Fatalf("toRoman(%d) = %q, want %q", n, got, want)
		}
	}
}
