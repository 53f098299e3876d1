package main

import "testing"

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in   string
		want uiMode
		ok   bool
	}{
		{"", uiModeAuto, true},
		{"auto", uiModeAuto, true},
		{"AUTO", uiModeAuto, true},
		{"on", uiModeOn, true},
		{" On ", uiModeOn, true},
		{"off", uiModeOff, true},
		{"tui", "", false},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("readUIMode(%q): %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("readUIMode(%q): no error", tc.in)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShouldUseTUIExplicitModes(t *testing.T) {
	if !shouldUseTUI(uiModeOn) {
		t.Fatalf("shouldUseTUI(on) = false")
	}
	if shouldUseTUI(uiModeOff) {
		t.Fatalf("shouldUseTUI(off) = true")
	}
}
