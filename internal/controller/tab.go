// Package controller holds the per-tab controllers that sit between the
// UI and the API client. Each tab owns one list mirrored from the server
// and mutates it only after the server accepted a write.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type State int

const (
	Idle State = iota
	Submitting
	Deleting
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Deleting:
		return "deleting"
	}
	return "idle"
}

var (
	// ErrNotInList rejects edits and deletes of ids the local list does
	// not hold (stale UI). No request is sent.
	ErrNotInList = errors.New("not in the local list")
	// ErrSuperseded is returned by an action whose entity got a newer
	// action before the response arrived. Its response is dropped.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// UploadError wraps a failed image upload. When it is returned no
// create or update request was sent.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// uploadAttachment uploads the file an image field points at. It returns
// "" without touching the network when the field is empty or a URL.
func uploadAttachment(ctx context.Context, up ImageUploader, image string) (string, error) {
	path, ok := form.ImageFile(image)
	if !ok {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("open image: %w", err)}
	}
	defer f.Close()
	u, err := up.UploadImage(ctx, path, f)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return u, nil
}

// ------------- shared tab core -------------

type flight struct {
	seq    uint64
	state  State
	cancel context.CancelFunc
}

// tab tracks one in-flight action per entity key. Starting a new action
// on a key cancels the old one, and only the latest action on a key may
// commit to the list.
type tab[T store.Entity] struct {
	name   string
	list   *store.List[T]
	logger *zap.Logger

	mu       sync.Mutex
	seq      uint64
	inflight map[string]*flight
}

func newTab[T store.Entity](name string, logger *zap.Logger) tab[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return tab[T]{
		name:     name,
		list:     store.NewList[T](nil),
		logger:   logger.With(zap.String("tab", name)),
		inflight: map[string]*flight{},
	}
}

// action is one registered create, update or delete.
type action struct {
	ctx  context.Context
	key  string
	seq  uint64
	done func()
}

// begin registers an action on key; an empty key (create) gets a slot of
// its own, so creates never supersede each other. The action's context is
// cancelled when a newer action on the same key starts or when done is
// called. A pending delete is never cancelled: once sent, the server may
// already have applied it.
func (t *tab[T]) begin(ctx context.Context, key string, st State) action {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	if key == "" {
		key = fmt.Sprintf("new#%d", seq)
	}
	if prev := t.inflight[key]; prev != nil && prev.state != Deleting {
		prev.cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	t.inflight[key] = &flight{seq: seq, state: st, cancel: cancel}
	t.mu.Unlock()

	done := func() {
		t.mu.Lock()
		if f := t.inflight[key]; f != nil && f.seq == seq {
			delete(t.inflight, key)
		}
		t.mu.Unlock()
		cancel()
	}
	return action{ctx: cctx, key: key, seq: seq, done: done}
}

func (t *tab[T]) current(a action) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.inflight[a.key]
	return f != nil && f.seq == a.seq
}

// commit applies fn to the list if a is still the latest action on its key.
func (t *tab[T]) commit(a action, fn func([]T) []T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.inflight[a.key]
	if f == nil || f.seq != a.seq {
		t.logger.Debug("dropping superseded result", zap.String("key", a.key))
		return false
	}
	t.list.Apply(fn)
	return true
}

// failed maps an API error, turning errors of superseded actions into
// ErrSuperseded.
func (t *tab[T]) failed(a action, op string, err error) error {
	if !t.current(a) {
		t.logger.Debug("dropping superseded error", zap.String("op", op), zap.String("key", a.key))
		return ErrSuperseded
	}
	t.logger.Warn(op+" failed", zap.String("key", a.key), zap.Error(err))
	return err
}

func (t *tab[T]) Items() []T { return t.list.Items() }

func (t *tab[T]) Get(id string) (T, bool) { return t.list.Get(id) }

// State is Submitting while any create/update is pending, else Deleting
// while any delete is pending, else Idle.
func (t *tab[T]) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := Idle
	for _, f := range t.inflight {
		if f.state == Submitting {
			return Submitting
		}
		st = f.state
	}
	return st
}

// Pending is the number of actions awaiting a response.
func (t *tab[T]) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}

// Cancel aborts every pending action.
func (t *tab[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range t.inflight {
		f.cancel()
	}
}

// remove is the shared delete path: local existence check, API call,
// prune on success.
func (t *tab[T]) remove(ctx context.Context, id string, call func(context.Context, string) error) error {
	if !t.list.Has(id) {
		return fmt.Errorf("delete %s %s: %w", t.name, id, ErrNotInList)
	}
	a := t.begin(ctx, id, Deleting)
	defer a.done()

	if err := call(a.ctx, id); err != nil {
		return t.failed(a, "delete", err)
	}
	// The entity is gone server-side whatever else started meanwhile.
	t.mu.Lock()
	t.list.Apply(func(items []T) []T {
		out, _ := store.Remove(items, id)
		return out
	})
	t.mu.Unlock()
	t.logger.Info(t.name+" deleted", zap.String("id", id))
	return nil
}

// LoadAll fetches both tabs concurrently and fails if either fails.
func LoadAll(ctx context.Context, cats *CategoryTab, items *MenuItemTab) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return cats.Load(gctx) })
	g.Go(func() error { return items.Load(gctx) })
	return g.Wait()
}
