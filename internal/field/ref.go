package field

// Ref is a hard object reference, stored as the referenced object's path.
// The empty path means "no object" and encodes as null.
type Ref string

// SoftRef is a lazily-resolved object reference. It shares Ref's wire shape;
// the host defers loading until the target is actually needed.
type SoftRef string

// Name is a symbolic-name value: an interned identifier such as a parameter
// or socket name. It round-trips through the wire format as a plain string.
type Name string

// IsNone reports whether the reference is unset.
func (r Ref) IsNone() bool { return r == "" }

// IsNone reports whether the reference is unset.
func (r SoftRef) IsNone() bool { return r == "" }
