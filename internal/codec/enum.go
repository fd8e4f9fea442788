package codec

import (
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
)

// decodeEnum resolves a symbolic member name (or a raw ordinal, for callers
// replaying previously-read values) and assigns the member's ordinal.
func decodeEnum(f *field.Field, v reflect.Value, val cty.Value) error {
	if val.IsNull() {
		return operr.New(operr.TypeMismatch, "cannot decode null into enum field %q", f.Name)
	}

	if val.Type() == cty.Number {
		var ordinal int64
		if err := gocty.FromCtyValue(val, &ordinal); err != nil {
			return operr.Wrap(operr.TypeMismatch, err, "enum field %q ordinal", f.Name)
		}
		for _, m := range f.Enum {
			if m.Value == ordinal {
				setOrdinal(v, ordinal)
				return nil
			}
		}
		return operr.NotFoundWith(memberNames(f), "no member of enum %q has ordinal %d", f.Name, ordinal)
	}

	if val.Type() != cty.String {
		return operr.New(operr.TypeMismatch,
			"cannot decode %s into enum field %q", val.Type().FriendlyName(), f.Name)
	}

	m, ok := resolveEnumMember(f.Enum, val.AsString())
	if !ok {
		return operr.NotFoundWith(memberNames(f), "enum %q has no member matching %q", f.Name, val.AsString())
	}
	setOrdinal(v, m.Value)
	return nil
}

// resolveEnumMember tries, in order: an exact symbolic match; a match after
// prepending the enum's common prefix; a case-insensitive scan over members
// and their prefix-stripped forms. Callers commonly omit the redundant
// category prefix ("Masked" for "BLEND_Masked"), so the looser passes are
// load-bearing, not a convenience.
func resolveEnumMember(members []field.EnumMember, name string) (field.EnumMember, bool) {
	for _, m := range members {
		if m.Name == name {
			return m, true
		}
	}

	prefix := commonPrefix(members)
	if prefix != "" {
		for _, m := range members {
			if m.Name == prefix+name {
				return m, true
			}
		}
	}

	for _, m := range members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
		if prefix != "" && strings.EqualFold(strings.TrimPrefix(m.Name, prefix), name) {
			return m, true
		}
	}
	return field.EnumMember{}, false
}

// commonPrefix derives the enum's category prefix from its first member's
// text, up to and including the first separator.
func commonPrefix(members []field.EnumMember) string {
	if len(members) == 0 {
		return ""
	}
	first := members[0].Name
	if i := strings.IndexByte(first, '_'); i >= 0 {
		return first[:i+1]
	}
	return ""
}

func memberNames(f *field.Field) []string {
	names := make([]string, len(f.Enum))
	for i, m := range f.Enum {
		names[i] = m.Name
	}
	return names
}

func setOrdinal(v reflect.Value, ordinal int64) {
	if isUnsigned(v.Kind()) {
		v.SetUint(uint64(ordinal))
		return
	}
	v.SetInt(ordinal)
}
