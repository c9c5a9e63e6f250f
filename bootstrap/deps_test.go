package bootstrap

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommands installs a fake exec hook that records every invocation
// and runs `true` or `false` instead of the real command.
func fakeCommands(t *testing.T, succeed bool, onInstall func()) *[]string {
	t.Helper()
	var calls []string
	origExec := execCommand
	execCommand = func(name string, args ...string) *exec.Cmd {
		calls = append(calls, name+" "+strings.Join(args, " "))
		if onInstall != nil && len(args) > 0 && args[0] == "install" {
			onInstall()
		}
		if succeed {
			return exec.Command("true")
		}
		return exec.Command("false")
	}
	t.Cleanup(func() { execCommand = origExec })
	return &calls
}

func fakeProbe(t *testing.T, available *bool) {
	t.Helper()
	orig := ffmpegAvailable
	ffmpegAvailable = func() bool { return *available }
	t.Cleanup(func() { ffmpegAvailable = orig })
}

func installCalls(calls []string) int {
	n := 0
	for _, c := range calls {
		if strings.Contains(c, "install") {
			n++
		}
	}
	return n
}

func TestEnsureFfmpeg_AlreadyPresent(t *testing.T) {
	available := true
	fakeProbe(t, &available)
	calls := fakeCommands(t, true, nil)

	err := EnsureFfmpeg()
	require.NoError(t, err)

	// a positive probe must not trigger any installation
	assert.Empty(t, *calls)
}

func TestEnsureFfmpeg_InstallsOnce(t *testing.T) {
	available := false
	fakeProbe(t, &available)
	// the install run makes the binary appear
	calls := fakeCommands(t, true, func() { available = true })

	err := EnsureFfmpeg()
	require.NoError(t, err)

	assert.Equal(t, 1, installCalls(*calls))
}

func TestEnsureFfmpeg_InstallFails(t *testing.T) {
	available := false
	fakeProbe(t, &available)
	calls := fakeCommands(t, false, nil)

	err := EnsureFfmpeg()
	require.Error(t, err)

	// a failed install is attempted exactly once
	assert.Equal(t, 1, installCalls(*calls))
}

func TestEnsureFfmpeg_StillMissingAfterInstall(t *testing.T) {
	available := false
	fakeProbe(t, &available)
	// install reports success but the binary never shows up
	fakeCommands(t, true, nil)

	err := EnsureFfmpeg()
	require.Error(t, err)
}
