// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

// fakeServer records lifecycle calls into a shared journal.
type fakeServer struct {
	name      string
	listenErr error
	runErr    error

	journal *journal
	release chan struct{}
}

type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(e string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

func newFake(name string, j *journal) *fakeServer {
	return &fakeServer{name: name, journal: j, release: make(chan struct{})}
}

func (f *fakeServer) Name() string { return f.name }
func (f *fakeServer) Addr() string { return f.name + ":0" }

func (f *fakeServer) Listen() error {
	f.journal.add("listen " + f.name)
	return f.listenErr
}

func (f *fakeServer) RunServer() error {
	if f.runErr != nil {
		return f.runErr
	}
	<-f.release
	return nil
}

func (f *fakeServer) Shutdown(context.Context) {
	f.journal.add("shutdown " + f.name)
	select {
	case <-f.release:
	default:
		close(f.release)
	}
}

func TestMultiplexer_RegisterDoesNotBind(t *testing.T) {
	j := &journal{}
	m := NewMultiplexer(logger.Nop())

	m.Register(newFake("grpc", j))

	assert.Empty(t, j.list())
	assert.Empty(t, m.Started())
}

func TestMultiplexer_StartAll(t *testing.T) {
	j := &journal{}
	m := NewMultiplexer(logger.Nop())
	m.Register(newFake("a", j))
	m.Register(newFake("b", j))

	require.NoError(t, m.StartAll())
	assert.Equal(t, []string{"listen a", "listen b"}, j.list())
	assert.Equal(t, []string{"a", "b"}, m.Started())

	assert.ErrorIs(t, m.StartAll(), ErrAlreadyStarted)

	m.Shutdown(time.Second)
	assert.Equal(t, []string{"listen a", "listen b", "shutdown b", "shutdown a"}, j.list())
}

func TestMultiplexer_StartAllBindFailure(t *testing.T) {
	j := &journal{}
	bindErr := errors.New("address already in use")

	m := NewMultiplexer(logger.Nop())
	m.Register(newFake("a", j))
	failing := newFake("b", j)
	failing.listenErr = bindErr
	m.Register(failing)
	m.Register(newFake("c", j))

	err := m.StartAll()

	require.ErrorIs(t, err, bindErr)
	assert.Equal(t, []string{"listen a", "listen b", "shutdown a"}, j.list())
	assert.Empty(t, m.Started())
}

func TestMultiplexer_StartLateServer(t *testing.T) {
	j := &journal{}
	m := NewMultiplexer(logger.Nop())
	m.Register(newFake("grpc", j))
	require.NoError(t, m.StartAll())

	require.NoError(t, m.Start(newFake("http", j)))
	assert.Equal(t, []string{"grpc", "http"}, m.Started())

	m.Shutdown(time.Second)
	events := j.list()
	assert.Equal(t, []string{"shutdown http", "shutdown grpc"}, events[len(events)-2:])
}

func TestMultiplexer_WaitOnContext(t *testing.T) {
	j := &journal{}
	m := NewMultiplexer(logger.Nop())
	m.Register(newFake("grpc", j))
	require.NoError(t, m.StartAll())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.Wait(ctx, time.Second))
	assert.Contains(t, j.list(), "shutdown grpc")
}

func TestMultiplexer_WaitOnServerError(t *testing.T) {
	j := &journal{}
	serveErr := errors.New("boom")

	m := NewMultiplexer(logger.Nop())
	failing := newFake("grpc", j)
	failing.runErr = serveErr
	m.Register(failing)
	require.NoError(t, m.StartAll())

	err := m.Wait(context.Background(), time.Second)

	require.ErrorIs(t, err, serveErr)
	assert.Contains(t, err.Error(), "grpc")
}
