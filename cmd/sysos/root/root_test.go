package root

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func useTempDataDir(t *testing.T) {
	t.Helper()
	dataDir = t.TempDir()
	t.Cleanup(func() { dataDir = "" })
	t.Setenv("SYSOS_TIMEZONE", "UTC")
	t.Setenv("SYSOS_DSN", "")
	t.Setenv("SYSOS_GENERATOR_API_KEY", "")
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestResolveID(t *testing.T) {
	ids := []string{"a1b2c3", "a1ffff", "b7e0aa"}
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "b7", want: "b7e0aa"},
		{in: "a1b2c3", want: "a1b2c3"},
		{in: "a1", err: true},
		{in: "zz", want: "zz"},
		{in: "  ", err: true},
	}
	for _, tc := range cases {
		got, err := resolveID(tc.in, ids)
		if tc.err {
			if err == nil {
				t.Fatalf("resolveID(%q) expected an error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("resolveID(%q)=%q, %v want %q", tc.in, got, err, tc.want)
		}
	}
	if _, err := resolveID("a1", ids); !errors.Is(err, errAmbiguousID) {
		t.Fatalf("err=%v, want errAmbiguousID", err)
	}
}

func TestCommandsShareOneSnapshot(t *testing.T) {
	useTempDataDir(t)

	out, err := execute(t, newQuestsCmd())
	if err != nil {
		t.Fatalf("quests: %v", err)
	}
	if !strings.Contains(out, "Quest Log") {
		t.Fatalf("quests output:\n%s", out)
	}

	out, err = execute(t, newQuestCmd(), "add", "Read a chapter", "--rank", "C", "--stats", "int")
	if err != nil {
		t.Fatalf("quest add: %v", err)
	}
	if !strings.Contains(out, "Read a chapter") {
		t.Fatalf("quest add output:\n%s", out)
	}

	out, err = execute(t, newQuestsCmd())
	if err != nil {
		t.Fatalf("quests: %v", err)
	}
	if !strings.Contains(out, "Read a chapter") {
		t.Fatalf("custom quest not persisted:\n%s", out)
	}
}

func TestCheckInTwiceFails(t *testing.T) {
	useTempDataDir(t)

	if _, err := execute(t, newCheckInCmd()); err != nil {
		t.Fatalf("checkin: %v", err)
	}
	_, err := execute(t, newCheckInCmd())
	if err == nil || !strings.Contains(err.Error(), "already checked in") {
		t.Fatalf("second checkin err=%v", err)
	}
}

func TestEventsReachTheLog(t *testing.T) {
	useTempDataDir(t)

	if _, err := execute(t, newCheckInCmd()); err != nil {
		t.Fatalf("checkin: %v", err)
	}
	out, err := execute(t, newLogCmd(), "--limit", "10")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, "check-in") {
		t.Fatalf("log output:\n%s", out)
	}
}

func TestBadTimezoneFailsBeforeOpening(t *testing.T) {
	useTempDataDir(t)
	t.Setenv("SYSOS_TIMEZONE", "Mars/Olympus")

	if _, err := execute(t, newQuestsCmd()); err == nil || !strings.Contains(err.Error(), "Mars/Olympus") {
		t.Fatalf("err=%v, want timezone error", err)
	}
}
