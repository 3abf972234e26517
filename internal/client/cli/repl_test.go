package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubExec struct {
	loggedIn bool

	registerCalls int
	loginCalls    int
	whoamiCalls   int
	statusCalls   int
	logoutCalls   int
}

func (s *stubExec) isLoggedIn() bool                      { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error    { s.registerCalls++; return nil }
func (s *stubExec) Login(ctx context.Context) error       { s.loginCalls++; return nil }
func (s *stubExec) WhoAmI(ctx context.Context) error      { s.whoamiCalls++; return nil }
func (s *stubExec) SessionStatus(ctx context.Context) error { s.statusCalls++; return nil }
func (s *stubExec) Logout(ctx context.Context) error      { s.logoutCalls++; return nil }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	old := printlnFn
	t.Cleanup(func() { printlnFn = old })
	printlnFn = func(args ...any) (int, error) {
		var parts []string
		for _, a := range args {
			parts = append(parts, strings.TrimSpace(toString(a)))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func runWith(t *testing.T, exec execIface, input string) []string {
	t.Helper()
	lines := captureOutput(t)
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "(guest)" }, scanner)
	return *lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &stubExec{}
	runWith(t, exec, "login\nregister\nwhoami\nstatus\nlogout\nexit\n")

	require.Equal(t, 1, exec.loginCalls)
	require.Equal(t, 1, exec.registerCalls)
	require.Equal(t, 1, exec.whoamiCalls)
	require.Equal(t, 1, exec.statusCalls)
	require.Equal(t, 1, exec.logoutCalls)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	lines := runWith(t, &stubExec{}, "bogus\nexit\n")

	var found bool
	for _, l := range lines {
		if strings.Contains(l, "Unknown command") {
			found = true
		}
	}
	require.True(t, found)
}

func TestRunREPL_HelpFollowsView(t *testing.T) {
	guest := runWith(t, &stubExec{}, "help\nexit\n")
	require.Contains(t, strings.Join(guest, "\n"), "register, login")

	authed := runWith(t, &stubExec{loggedIn: true}, "help\nexit\n")
	require.Contains(t, strings.Join(authed, "\n"), "whoami, status, logout")
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runWith(t, exec, "login\n") // no exit, scanner hits EOF
	require.Equal(t, 1, exec.loginCalls)
}

func TestRunREPL_SkipsBlankLines(t *testing.T) {
	exec := &stubExec{}
	runWith(t, exec, "\n\nexit\n")
	require.Zero(t, exec.loginCalls)
}
