package object

import (
	"context"
	"reflect"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/hostreg"
)

// Txn is one transaction boundary around a mutation call. Cancel must leave
// the instance exactly as it was when the transaction opened; sub-steps are
// not independently cancellable.
type Txn interface {
	Commit()
	Cancel()
}

// Host is the set of hooks the mutation service invokes around writes.
type Host interface {
	// BeginTransaction opens a named boundary before the first write.
	BeginTransaction(ctx context.Context, name string, instance any) Txn
	// PostEditChange runs the host's post-write normalization. For batch
	// writes it runs exactly once, after all fields are applied.
	PostEditChange(ctx context.Context, instance any)
	// Validate checks the normalized post-edit state. A non-nil error
	// rejects the write outright; the caller cancels the transaction.
	Validate(ctx context.Context, instance any) error
	// MarkModified flags the instance's owning container as dirty.
	MarkModified(ctx context.Context, instance any)
}

// MemoryHost is the in-process Host: transactions snapshot the instance
// struct and restore it on cancel, normalization and validation dispatch to
// the instance's own Normalizer and Validator hooks, and modified instances
// are tracked in a set keyed by pointer identity.
type MemoryHost struct {
	modified map[any]struct{}
}

// NewMemoryHost creates an in-memory host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{modified: make(map[any]struct{})}
}

// BeginTransaction snapshots the instance for rollback.
func (h *MemoryHost) BeginTransaction(ctx context.Context, name string, instance any) Txn {
	ctxlog.FromContext(ctx).Debug("Transaction opened.", "name", name)
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return nopTxn{}
	}
	snapshot := reflect.New(v.Elem().Type())
	snapshot.Elem().Set(v.Elem())
	return &snapshotTxn{target: v, snapshot: snapshot}
}

// PostEditChange invokes the instance's normalization hook, if it has one.
func (h *MemoryHost) PostEditChange(ctx context.Context, instance any) {
	if n, ok := instance.(hostreg.Normalizer); ok {
		n.NormalizePostEdit()
	}
}

// Validate invokes the instance's validation hook, if it has one.
func (h *MemoryHost) Validate(ctx context.Context, instance any) error {
	if v, ok := instance.(hostreg.Validator); ok {
		return v.ValidatePostEdit()
	}
	return nil
}

// MarkModified records the instance in the modified set.
func (h *MemoryHost) MarkModified(ctx context.Context, instance any) {
	h.modified[instance] = struct{}{}
}

// IsModified reports whether the instance was marked since creation.
func (h *MemoryHost) IsModified(instance any) bool {
	_, ok := h.modified[instance]
	return ok
}

type snapshotTxn struct {
	target   reflect.Value
	snapshot reflect.Value
	done     bool
}

func (t *snapshotTxn) Commit() {
	t.done = true
}

func (t *snapshotTxn) Cancel() {
	if t.done {
		return
	}
	t.target.Elem().Set(t.snapshot.Elem())
	t.done = true
}

type nopTxn struct{}

func (nopTxn) Commit() {}
func (nopTxn) Cancel() {}
