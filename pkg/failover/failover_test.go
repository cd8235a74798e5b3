package failover

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoShortCircuitsOnFirstSuccess(t *testing.T) {
	var tried []string

	result, err := Do(context.Background(), []string{"a", "b", "c"}, time.Millisecond,
		func(_ context.Context, endpoint string) (string, error) {
			tried = append(tried, endpoint)
			return "ok-" + endpoint, nil
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, "ok-a", result)
	assert.Equal(t, []string{"a"}, tried)
}

func TestDoTriesEndpointsInOrder(t *testing.T) {
	var tried []string
	boom := errors.New("boom")

	result, err := Do(context.Background(), []string{"a", "b", "c"}, time.Millisecond,
		func(_ context.Context, endpoint string) (int, error) {
			tried = append(tried, endpoint)
			if endpoint != "c" {
				return 0, boom
			}
			return 42, nil
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, []string{"a", "b", "c"}, tried)
}

func TestDoReturnsLastError(t *testing.T) {
	first := errors.New("first failure")
	last := errors.New("last failure")
	var observed []error

	_, err := Do(context.Background(), []string{"a", "b"}, time.Millisecond,
		func(_ context.Context, endpoint string) (struct{}, error) {
			if endpoint == "a" {
				return struct{}{}, first
			}
			return struct{}{}, last
		},
		func(_ string, err error) { observed = append(observed, err) })

	assert.ErrorIs(t, err, last)
	assert.Equal(t, []error{first, last}, observed)
}

func TestDoEmptyEndpoints(t *testing.T) {
	_, err := Do(context.Background(), nil, time.Millisecond,
		func(_ context.Context, _ string) (int, error) { return 0, nil }, nil)

	assert.ErrorIs(t, err, ErrNoEndpoints)
}

func TestDoStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := Do(ctx, []string{"a", "b"}, time.Minute,
		func(_ context.Context, _ string) (int, error) {
			cancel()
			return 0, errors.New("boom")
		}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
