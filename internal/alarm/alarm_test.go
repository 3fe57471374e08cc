package alarm

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlayer struct {
	mock.Mock
}

func (m *mockPlayer) Play(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func blockUntilDone(args mock.Arguments) {
	<-args.Get(0).(context.Context).Done()
}

func TestRinger_DoneAfterWindow(t *testing.T) {
	player := &mockPlayer{}
	player.On("Play", mock.Anything, "Glass").Return(nil)

	done := make(chan struct{})
	ringer := NewRinger(player, SilentPlayer{})
	ringer.Ring("Glass", 30*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done was not called")
	}
	player.AssertCalled(t, "Play", mock.Anything, "Glass")
}

func TestRinger_StopSuppressesDone(t *testing.T) {
	player := &mockPlayer{}
	player.On("Play", mock.Anything, "Glass").Run(blockUntilDone).Return(nil)

	called := make(chan struct{}, 1)
	ringer := NewRinger(player, SilentPlayer{})
	stop := ringer.Ring("Glass", time.Hour, func() { called <- struct{}{} })
	stop()
	stop()

	select {
	case <-called:
		t.Fatal("done called after stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRinger_FallsBackOnError(t *testing.T) {
	primary := &mockPlayer{}
	primary.On("Play", mock.Anything, "Glass").Return(errors.New("no audio device")).Once()

	fallback := &mockPlayer{}
	fallback.On("Play", mock.Anything, "Glass").Run(blockUntilDone).Return(nil)

	done := make(chan struct{})
	ringer := NewRinger(primary, fallback)
	ringer.Ring("Glass", 30*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done was not called")
	}
	primary.AssertExpectations(t)
	fallback.AssertCalled(t, "Play", mock.Anything, "Glass")
}

func TestRinger_NoWindowPlaysOnce(t *testing.T) {
	player := &mockPlayer{}
	player.On("Play", mock.Anything, "Ping").Return(nil).Once()

	done := make(chan struct{})
	NewRinger(player, SilentPlayer{}).Ring("Ping", 0, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done was not called")
	}
	player.AssertExpectations(t)
}

func TestBellPlayer(t *testing.T) {
	var buf bytes.Buffer
	player := NewBellPlayer(&buf)
	require.NoError(t, player.Play(context.Background(), "anything"))
	assert.Equal(t, "\a", buf.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, player.Play(ctx, "anything"), context.Canceled)
}

func TestCommandPlayer_UnknownSound(t *testing.T) {
	player := &CommandPlayer{sounds: map[string]string{"Glass": "/dev/null"}}
	err := player.Play(context.Background(), "Nope")
	assert.ErrorIs(t, err, ErrUnknownSound)

	err = player.Play(context.Background(), "Glass")
	assert.ErrorContains(t, err, "no audio command")
}

func TestCatalog(t *testing.T) {
	names := Catalog()
	require.NotEmpty(t, names)
	assert.Equal(t, "None", names[0])
	assert.Contains(t, names, "Glass")
	assert.IsNonDecreasing(t, names[1:])
}

func TestRinger_WithoutWindowFinishesWhenEveryPlayerFails(t *testing.T) {
	primary := &mockPlayer{}
	primary.On("Play", mock.Anything, "Glass").Return(errors.New("no audio device")).Once()
	fallback := &mockPlayer{}
	fallback.On("Play", mock.Anything, "Glass").Return(errors.New("no terminal")).Once()

	done := make(chan struct{})
	ringer := NewRinger(primary, fallback)
	ringer.Ring("Glass", 0, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done was not called")
	}
	primary.AssertExpectations(t)
	fallback.AssertExpectations(t)
}

func TestRinger_WindowHeldWhenEveryPlayerFails(t *testing.T) {
	primary := &mockPlayer{}
	primary.On("Play", mock.Anything, "Glass").Return(errors.New("no audio device")).Once()
	fallback := &mockPlayer{}
	fallback.On("Play", mock.Anything, "Glass").Return(errors.New("no terminal")).Once()

	done := make(chan struct{})
	started := time.Now()
	ringer := NewRinger(primary, fallback)
	ringer.Ring("Glass", 40*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done was not called")
	}
	assert.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
	fallback.AssertExpectations(t)
}
