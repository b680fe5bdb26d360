package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestServe_StopsOnCancel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, server, zap.New(core)) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not return after cancellation")
	}
	assert.Equal(t, 1, logs.FilterMessage("server stopped").Len())
}

func TestServe_ListenError(t *testing.T) {
	server := &http.Server{Addr: "no-port-here", ReadHeaderTimeout: time.Second}

	err := serve(context.Background(), server, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen no-port-here")
}
