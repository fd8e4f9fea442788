package codec

import (
	"context"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
)

// FieldFailure records one failed entry of a batch write.
type FieldFailure struct {
	Name    string
	Message string
}

// BatchResult reports a batch write per field. Succeeded and Failed are
// both ordered by field name so batch results compare deterministically.
type BatchResult struct {
	Succeeded []string
	Failed    []FieldFailure
}

// Changed reports whether at least one field was written.
func (r BatchResult) Changed() bool {
	return len(r.Succeeded) > 0
}

// SetMany decodes a batch of named values into a live instance. Fields are
// fully independent: one failure never blocks a sibling. Names are applied
// in sorted order so repeated calls behave identically.
func (c *Codec) SetMany(ctx context.Context, instance any, values map[string]cty.Value) BatchResult {
	logger := ctxlog.FromContext(ctx)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var result BatchResult
	for _, name := range names {
		f, err := c.lookupInstanceField(instance, name)
		if err != nil {
			result.Failed = append(result.Failed, FieldFailure{Name: name, Message: err.Error()})
			continue
		}
		if err := c.Decode(ctx, f, instance, values[name]); err != nil {
			logger.Debug("Batch field rejected.", "field", name, "error", err)
			result.Failed = append(result.Failed, FieldFailure{Name: name, Message: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, name)
	}
	return result
}

func (c *Codec) lookupInstanceField(instance any, name string) (*field.Field, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, operr.New(operr.TypeMismatch, "instance must be a non-nil struct pointer")
	}
	return c.reg.LookupField(v.Elem().Type(), name)
}
