package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/stretchr/testify/require"
)

func TestWatcher_InvalidatesOnNewAddonDir(t *testing.T) {
	base := t.TempDir()
	writeAddonDir(t, base, "addons", "alpha", "1.0.0", 0)

	m := NewManager(base, "", testRoots, nil)
	require.NotNil(t, m.LookupAddon("alpha"))
	require.Nil(t, m.LookupAddon("beta"))

	// The callback runs on the watcher goroutine; the manager is only touched
	// from the test goroutine again after Run has returned.
	changed := make(chan struct{}, 1)
	w, err := NewWatcher(m, func() {
		m.Invalidate()
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeAddonDir(t, base, "addons", "beta", "1.0.0", 0)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("scan root change was not delivered")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	d := m.LookupAddon("beta")
	require.NotNil(t, d)
	require.Equal(t, model.TypeAddon, d.Type)
}
