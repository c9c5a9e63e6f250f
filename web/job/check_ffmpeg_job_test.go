package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFfmpegJob_StartStop(t *testing.T) {
	j := NewCheckFfmpegJob(nil)

	require.NoError(t, j.Start())
	// double start is a no-op
	require.NoError(t, j.Start())
	require.NoError(t, j.Stop())

	// stop without a running watcher is harmless
	assert.NoError(t, j.Stop())
}

func TestCheckFfmpegJob_Restart(t *testing.T) {
	j := NewCheckFfmpegJob(nil)

	require.NoError(t, j.Start())
	require.NoError(t, j.Stop())
	require.NoError(t, j.Start())

	// the watcher must run on a live context after a restart
	require.NotNil(t, j.ctx)
	assert.NoError(t, j.ctx.Err())

	require.NoError(t, j.Stop())
	assert.Error(t, j.ctx.Err())
}
