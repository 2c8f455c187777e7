package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stub struct {
	closed int
}

func (s *stub) Close_() { s.closed++ }

func (*stub) String() string { return "stub" }

func TestStart(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&stub{})
	require.NoError(t, manager.Start(func(*stub) error { return nil }))
}

func TestStartError(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&stub{})
	wantErr := errors.New("init failed")
	require.ErrorIs(t, manager.Start(func(*stub) error { return wantErr }), wantErr)
}

func TestStartTwice(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&stub{})
	require.NoError(t, manager.Start(func(*stub) error { return nil }))

	targetErr := &StartedAlreadyError{}
	require.ErrorAs(t, manager.Start(func(*stub) error { return nil }), &targetErr)
}

func TestCloseOnce(t *testing.T) {
	t.Parallel()

	inst := &stub{}
	manager := NewDefaultManager(inst)
	require.NoError(t, manager.Start(func(*stub) error { return nil }))

	manager.Close()
	manager.Close()
	require.Equal(t, 1, inst.closed)
}

func TestStartAfterClose(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&stub{})
	manager.Close()

	targetErr := &StartedAfterCloseError{}
	require.ErrorAs(t, manager.Start(func(*stub) error { return nil }), &targetErr)
}
