package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRegistersJobs(t *testing.T) {
	e := newTestEnv(t)

	s, err := NewScheduler(e.postbacks, e.ranking, time.Minute, true)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Jobs())
	s.Start()
	require.NoError(t, s.Shutdown())

	s, err = NewScheduler(e.postbacks, e.ranking, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Jobs())
	s.Start()
	require.NoError(t, s.Shutdown())
}
