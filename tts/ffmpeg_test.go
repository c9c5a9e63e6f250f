package tts

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/Shaanadrian1/AuthAudioBot/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFfmpegAvailable(t *testing.T) {
	origLookPath := lookPath
	defer func() { lookPath = origLookPath }()

	lookPath = func(file string) (string, error) {
		assert.Equal(t, "ffmpeg", file)
		return "/usr/bin/ffmpeg", nil
	}
	assert.True(t, FfmpegAvailable())

	lookPath = func(string) (string, error) {
		return "", exec.ErrNotFound
	}
	assert.False(t, FfmpegAvailable())
}

func TestOpusArgs(t *testing.T) {
	args := opusArgs("in.mp3", "out.ogg")

	assert.Equal(t, "-y", args[0])
	assert.Contains(t, args, "in.mp3")
	assert.Equal(t, "out.ogg", args[len(args)-1])

	// Telegram voice notes need mono 48kHz Opus in an OGG container.
	expectPair := func(flag, value string) {
		for i, a := range args[:len(args)-1] {
			if a == flag {
				assert.Equal(t, value, args[i+1], "value for %s", flag)
				return
			}
		}
		t.Errorf("flag %s not found in args", flag)
	}
	expectPair("-c:a", "libopus")
	expectPair("-ar", "48000")
	expectPair("-ac", "1")
	expectPair("-b:a", "64k")
	expectPair("-f", "ogg")
}

func TestConvertToOpus(t *testing.T) {
	origExec := execCommand
	defer func() { execCommand = origExec }()

	var gotArgs []string
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		require.Equal(t, "ffmpeg", name)
		gotArgs = args
		outPath := args[len(args)-1]
		require.NoError(t, os.WriteFile(outPath, []byte("ogg-bytes"), 0o600))
		return exec.CommandContext(ctx, "true")
	}

	data, err := ConvertToOpus(context.Background(), []byte("mp3-bytes"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ogg-bytes"), data)
	assert.Contains(t, gotArgs, "libopus")

	// The temp input file must hold the source audio when ffmpeg runs.
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		inData, err := os.ReadFile(args[2])
		require.NoError(t, err)
		require.Equal(t, []byte("mp3-bytes"), inData)
		require.NoError(t, os.WriteFile(args[len(args)-1], []byte("x"), 0o600))
		return exec.CommandContext(ctx, "true")
	}
	_, err = ConvertToOpus(context.Background(), []byte("mp3-bytes"))
	require.NoError(t, err)
}

func TestConvertToOpusFfmpegFailure(t *testing.T) {
	origExec := execCommand
	defer func() { execCommand = origExec }()

	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}

	_, err := ConvertToOpus(context.Background(), []byte("mp3-bytes"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAudioConvert))
}
