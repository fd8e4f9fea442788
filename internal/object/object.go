// Package object implements the object mutation service: field reads and
// writes against live host instances, wrapped in named transaction
// boundaries with a post-write normalization pass.
//
// Writes return the actual stored value, re-encoded after normalization.
// Callers must trust that value over their own input: the host is free to
// clamp a value on write, and clamping is not an error.
package object

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/codec"
	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
)

// Service performs property reads and writes through the codec, bracketed
// by host transactions.
type Service struct {
	codec *codec.Codec
	host  Host
}

// New creates an object mutation service. A nil host gets the in-memory
// snapshot host.
func New(c *codec.Codec, host Host) *Service {
	if host == nil {
		host = NewMemoryHost()
	}
	return &Service{codec: c, host: host}
}

// Get reads one field of an instance as a wire value.
func (s *Service) Get(ctx context.Context, instance any, name string) (cty.Value, error) {
	f, err := s.lookup(instance, name)
	if err != nil {
		return cty.NilVal, err
	}
	return s.codec.Encode(ctx, f, instance)
}

// Set writes one field and returns the value actually stored after the
// host's post-write normalization, which may differ from the input.
func (s *Service) Set(ctx context.Context, instance any, name string, val cty.Value) (cty.Value, error) {
	f, err := s.lookup(instance, name)
	if err != nil {
		return cty.NilVal, err
	}
	if f.ReadOnly {
		return cty.NilVal, operr.New(operr.ReadOnly, "field %q is not editable", name)
	}

	txn := s.host.BeginTransaction(ctx, txnName("SetProperty", name), instance)
	if err := s.codec.Decode(ctx, f, instance, val); err != nil {
		txn.Cancel()
		return cty.NilVal, err
	}
	s.host.PostEditChange(ctx, instance)
	if err := s.host.Validate(ctx, instance); err != nil {
		txn.Cancel()
		return cty.NilVal, operr.Wrap(operr.HostRejected, err, "host rejected write to %q", name)
	}
	s.host.MarkModified(ctx, instance)
	txn.Commit()

	actual, err := s.codec.Encode(ctx, f, instance)
	if err != nil {
		return cty.NilVal, fmt.Errorf("re-encoding %q after write: %w", name, err)
	}
	return actual, nil
}

// SetMany writes a batch of fields with per-field isolation, then runs
// exactly one normalization pass and marks the instance modified once,
// provided at least one field succeeded. Host rejection of the final state
// cancels the transaction and fails the whole batch.
func (s *Service) SetMany(ctx context.Context, instance any, values map[string]cty.Value) codec.BatchResult {
	txn := s.host.BeginTransaction(ctx, txnName("SetProperties", ""), instance)
	result := s.codec.SetMany(ctx, instance, values)
	if result.Changed() {
		s.host.PostEditChange(ctx, instance)
		if err := s.host.Validate(ctx, instance); err != nil {
			// Rejection rolls back the whole boundary, so fields that
			// decoded fine are reported failed too.
			txn.Cancel()
			rejected := operr.Wrap(operr.HostRejected, err, "host rejected batch write")
			for _, name := range result.Succeeded {
				result.Failed = append(result.Failed, codec.FieldFailure{Name: name, Message: rejected.Error()})
			}
			result.Succeeded = nil
			return result
		}
		s.host.MarkModified(ctx, instance)
	}
	txn.Commit()

	ctxlog.FromContext(ctx).Debug("Batch write finished.",
		"succeeded", len(result.Succeeded), "failed", len(result.Failed))
	return result
}

func (s *Service) lookup(instance any, name string) (*field.Field, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, operr.New(operr.TypeMismatch, "instance must be a non-nil struct pointer")
	}
	return s.codec.Registry().LookupField(v.Elem().Type(), name)
}

func txnName(op, detail string) string {
	if detail == "" {
		return fmt.Sprintf("%s/%s", op, uuid.NewString())
	}
	return fmt.Sprintf("%s(%s)/%s", op, detail, uuid.NewString())
}
