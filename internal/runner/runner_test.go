package runner

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_AppendAndItems(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 3; i++ {
		r.Append(i)
	}
	assert.Equal(t, []int{1, 2, 3}, r.Items())
	assert.Equal(t, 3, r.Len())
}

func TestRing_OverwritesOldest(t *testing.T) {
	r := NewRing[string](3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		r.Append(s)
	}
	assert.Equal(t, []string{"c", "d", "e"}, r.Items())
	assert.Equal(t, 3, r.Len())
}

func TestRing_Empty(t *testing.T) {
	r := NewRing[string](4)
	assert.Empty(t, r.Items())
	assert.Zero(t, r.Len())
}

func TestRun_StreamsOutput(t *testing.T) {
	var mu sync.Mutex
	var lines []string

	replay, err := Run(context.Background(), t.TempDir(), "echo one; echo two", func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"one", "two"}, lines)
	assert.ElementsMatch(t, []string{"one", "two"}, replay)
}

func TestRun_CapturesStderr(t *testing.T) {
	replay, err := Run(context.Background(), t.TempDir(), "echo oops 1>&2", nil)
	require.NoError(t, err)
	assert.Contains(t, replay, "oops")
}

func TestRun_ExitError(t *testing.T) {
	_, err := Run(context.Background(), t.TempDir(), "exit 3", nil)
	assert.Error(t, err)
}

func TestStart_ReplayIsBounded(t *testing.T) {
	cmd := fmt.Sprintf("i=0; while [ $i -lt %d ]; do echo line $i; i=$((i+1)); done", ReplayLines+20)
	s, err := Start(context.Background(), t.TempDir(), cmd, nil)
	require.NoError(t, err)
	require.NoError(t, s.Wait())

	replay := s.Replay()
	assert.Len(t, replay, ReplayLines)
	assert.Equal(t, "line 20", replay[0], "oldest lines discarded first")
}
