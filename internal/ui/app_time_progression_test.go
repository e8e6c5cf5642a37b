package ui

import (
	"strings"
	"testing"
)

func TestSubmitWaitAdvancesGameClock(t *testing.T) {
	m := testRunModel(t)
	m.runInput = "wait 3"

	gotModel, _ := m.submitRunInput()
	got := gotModel.(menuModel)

	if alive := got.session.Fire().TimeAlive(); alive != 15 {
		t.Fatalf("expected three turns to spend 15 fire time, got %v", alive)
	}
	joined := strings.Join(got.runMessages, "\n")
	if !strings.Contains(joined, "You wait 3 turns.") {
		t.Fatalf("expected wait message in history, got %q", joined)
	}
}

func TestQueriesCostNoTime(t *testing.T) {
	m := testRunModel(t)

	for _, cmd := range []string{"status", "inventory", "player", "help"} {
		m.runInput = cmd
		gotModel, _ := m.submitRunInput()
		m = gotModel.(menuModel)
	}

	if alive := m.session.Fire().TimeAlive(); alive != 0 {
		t.Fatalf("expected queries to leave the fire clock at zero, got %v", alive)
	}
}

func TestMessageStampFollowsFireClock(t *testing.T) {
	m := testRunModel(t)
	m.runInput = "wait"

	gotModel, _ := m.submitRunInput()
	got := gotModel.(menuModel)

	last := got.runMessages[len(got.runMessages)-1]
	if !strings.HasPrefix(last, "[00:00:05]") {
		t.Fatalf("expected the answer stamped with the advanced clock, got %q", last)
	}
	echo := got.runMessages[len(got.runMessages)-2]
	if !strings.HasPrefix(echo, "[00:00:00]") {
		t.Fatalf("expected the echo stamped before time moved, got %q", echo)
	}
}

func TestFormatGameTime(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "[00:00:00]"},
		{65, "[00:01:05]"},
		{3725, "[01:02:05]"},
		{-4, "[00:00:00]"},
	}
	for _, tc := range cases {
		if got := formatGameTime(tc.in); got != tc.want {
			t.Fatalf("formatGameTime(%v): got %q want %q", tc.in, got, tc.want)
		}
	}
}
