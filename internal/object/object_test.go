package object

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/codec"
	"github.com/vk/exprgraphgo/internal/exprs"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/operr"
)

func newService(t *testing.T) (*Service, *MemoryHost) {
	t.Helper()
	reg := hostreg.New()
	(&exprs.Module{}).Register(reg)
	host := NewMemoryHost()
	return New(codec.New(reg), host), host
}

func TestGet(t *testing.T) {
	svc, _ := newService(t)
	instance := &exprs.ScalarParameter{DefaultValue: 2.5}

	val, err := svc.Get(context.Background(), instance, "DefaultValue")
	require.NoError(t, err)
	assert.True(t, cty.NumberFloatVal(2.5).RawEquals(val))
}

func TestGetUnknownFieldListsAlternatives(t *testing.T) {
	svc, _ := newService(t)
	instance := &exprs.ScalarParameter{}

	_, err := svc.Get(context.Background(), instance, "DefautValue")
	require.Error(t, err)
	var oe *operr.Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, operr.NotFound, oe.Kind)
	assert.Contains(t, oe.Alternatives, "DefaultValue")
}

func TestSetReturnsNormalizedValue(t *testing.T) {
	svc, host := newService(t)
	instance := &exprs.ScalarParameter{SliderMin: 0, SliderMax: 1}

	// The host clamps on write; the caller sees the clamped value, not an
	// error and not its own input.
	actual, err := svc.Set(context.Background(), instance, "DefaultValue", cty.NumberFloatVal(5))
	require.NoError(t, err)
	assert.True(t, cty.NumberFloatVal(1).RawEquals(actual))
	assert.Equal(t, 1.0, instance.DefaultValue)
	assert.True(t, host.IsModified(instance))
}

func TestSetReadOnlyField(t *testing.T) {
	svc, host := newService(t)
	instance := &exprs.Surface{PhysicalSurfaceId: 3}

	_, err := svc.Set(context.Background(), instance, "PhysicalSurfaceId", cty.NumberIntVal(9))
	require.Error(t, err)
	assert.True(t, operr.IsKind(err, operr.ReadOnly))
	assert.Equal(t, 3, instance.PhysicalSurfaceId)
	assert.False(t, host.IsModified(instance))
}

func TestSetFailureCancelsTransaction(t *testing.T) {
	svc, host := newService(t)
	instance := &exprs.Surface{OpacityMaskClipValue: 0.4}

	_, err := svc.Set(context.Background(), instance, "OpacityMaskClipValue", cty.StringVal("garbage"))
	require.Error(t, err)
	assert.Equal(t, 0.4, instance.OpacityMaskClipValue)
	assert.False(t, host.IsModified(instance))
}

func TestSetManyRunsOneNormalizationPass(t *testing.T) {
	svc, host := newService(t)
	instance := &exprs.ScalarParameter{}

	// DefaultValue lands outside the slider range that arrives in the same
	// batch. A single post-batch normalization clamps it against the final
	// range, which only works if normalization runs after every field.
	result := svc.SetMany(context.Background(), instance, map[string]cty.Value{
		"DefaultValue": cty.NumberFloatVal(10),
		"SliderMin":    cty.NumberFloatVal(0),
		"SliderMax":    cty.NumberFloatVal(2),
	})
	require.Empty(t, result.Failed)
	assert.Len(t, result.Succeeded, 3)
	assert.Equal(t, 2.0, instance.DefaultValue)
	assert.True(t, host.IsModified(instance))
}

func TestSetManyPartialFailure(t *testing.T) {
	svc, host := newService(t)
	instance := &exprs.ScalarParameter{}

	result := svc.SetMany(context.Background(), instance, map[string]cty.Value{
		"DefaultValue": cty.NumberFloatVal(0.5),
		"NoSuchField":  cty.True,
	})
	assert.Equal(t, []string{"DefaultValue"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "NoSuchField", result.Failed[0].Name)
	assert.True(t, host.IsModified(instance), "partial success still marks modified")
}

func TestSetManyAllFailedMarksNothing(t *testing.T) {
	svc, host := newService(t)
	instance := &exprs.ScalarParameter{}

	result := svc.SetMany(context.Background(), instance, map[string]cty.Value{
		"NoSuchField": cty.True,
	})
	assert.False(t, result.Changed())
	assert.False(t, host.IsModified(instance))
}

// gatedParameter refuses negative thresholds outright instead of clamping.
type gatedParameter struct {
	Threshold float64 `expr:"Threshold"`
}

func (p *gatedParameter) ValidatePostEdit() error {
	if p.Threshold < 0 {
		return errors.New("threshold must not be negative")
	}
	return nil
}

func TestSetHostRejection(t *testing.T) {
	svc, host := newService(t)
	instance := &gatedParameter{Threshold: 0.5}

	_, err := svc.Set(context.Background(), instance, "Threshold", cty.NumberFloatVal(-1))
	require.Error(t, err)
	assert.True(t, operr.IsKind(err, operr.HostRejected))
	assert.Equal(t, 0.5, instance.Threshold, "rejected write must roll back")
	assert.False(t, host.IsModified(instance))

	actual, err := svc.Set(context.Background(), instance, "Threshold", cty.NumberFloatVal(2))
	require.NoError(t, err)
	assert.True(t, cty.NumberFloatVal(2).RawEquals(actual))
}

func TestSetManyHostRejectionFailsWholeBatch(t *testing.T) {
	svc, host := newService(t)
	instance := &gatedParameter{Threshold: 0.5}

	result := svc.SetMany(context.Background(), instance, map[string]cty.Value{
		"Threshold": cty.NumberFloatVal(-1),
	})
	assert.Empty(t, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0].Message, "host rejected")
	assert.Equal(t, 0.5, instance.Threshold, "rejected batch must roll back")
	assert.False(t, host.IsModified(instance))
}

func TestSnapshotTxnCancelRestores(t *testing.T) {
	host := NewMemoryHost()
	instance := &exprs.ScalarParameter{DefaultValue: 1, SliderMax: 4}

	txn := host.BeginTransaction(context.Background(), "test", instance)
	instance.DefaultValue = 9
	instance.SliderMax = 0
	txn.Cancel()

	assert.Equal(t, 1.0, instance.DefaultValue)
	assert.Equal(t, 4.0, instance.SliderMax)

	// Cancel after commit is a no-op.
	txn = host.BeginTransaction(context.Background(), "test", instance)
	instance.DefaultValue = 9
	txn.Commit()
	txn.Cancel()
	assert.Equal(t, 9.0, instance.DefaultValue)
}
