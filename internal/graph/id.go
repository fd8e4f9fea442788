// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import (
	"fmt"
	"regexp"
	"strconv"
)

// ID identifies a node within one graph session. Ids are arena slots paired
// with a generation counter: stable while the session lives, invalidated
// wholesale on reload. They are never persisted.
type ID struct {
	Index int
	Gen   uint32
}

// NilID is the zero value for "no node".
var NilID = ID{Index: -1}

// IsNil reports whether the id addresses no node.
func (id ID) IsNil() bool {
	return id.Index < 0
}

// String serializes the id into its canonical session-local form, e.g. "n3g1".
func (id ID) String() string {
	if id.IsNil() {
		return ""
	}
	return fmt.Sprintf("n%dg%d", id.Index, id.Gen)
}

var idRegex = regexp.MustCompile(`^n(\d+)g(\d+)$`)

// ParseID parses the canonical string form of a node id.
func ParseID(raw string) (ID, error) {
	matches := idRegex.FindStringSubmatch(raw)
	if matches == nil {
		return NilID, fmt.Errorf("invalid node id format: %q", raw)
	}
	index, err := strconv.Atoi(matches[1])
	if err != nil {
		// Unreachable due to regex `\d+`
		return NilID, fmt.Errorf("internal error parsing node index: %w", err)
	}
	gen, err := strconv.ParseUint(matches[2], 10, 32)
	if err != nil {
		return NilID, fmt.Errorf("internal error parsing node generation: %w", err)
	}
	return ID{Index: index, Gen: uint32(gen)}, nil
}
