package downloadmgr

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type fakeItem struct {
	calls *int32
	err   error
}

func (f *fakeItem) Download(ctx context.Context) error {
	atomic.AddInt32(f.calls, 1)
	return f.err
}

func TestDownloadManager(t *testing.T) {
	var calls int32
	mgr := New(2)
	for i := 0; i < 10; i++ {
		mgr.Add(&fakeItem{calls: &calls})
	}

	lastDone := 0
	mgr.OnProgress = func(done int, total int) {
		lastDone = done
		if total != 10 {
			t.Errorf("expected total 10, got %d", total)
		}
	}
	if err := mgr.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 10 || lastDone != 10 {
		t.Errorf("expected 10 downloads, got %d calls and %d done", calls, lastDone)
	}
}

func TestDownloadManager_error(t *testing.T) {
	var calls int32
	boom := errors.New("boom")
	mgr := New(1)
	mgr.Add(&fakeItem{calls: &calls, err: boom})

	if err := mgr.Start(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if err := New(0).Start(context.Background()); err != nil {
		t.Errorf("empty queue should not fail: %v", err)
	}
}
