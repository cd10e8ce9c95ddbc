package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil answer service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingAnswerService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Answer: &mockAnswerService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestRunHTTP_GracefulShutdown(t *testing.T) {
	server, err := NewServer(&Ports{Answer: &mockAnswerService{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.RunHTTP(ctx, "127.0.0.1:0")
	}()

	// Let the listener come up, then cancel and expect a clean exit.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil answer service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingAnswerService)
	})

	t.Run("answer only is valid", func(t *testing.T) {
		ports := &Ports{
			Answer: &mockAnswerService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Answer:    &mockAnswerService{},
			Knowledge: &mockKnowledgeService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}
