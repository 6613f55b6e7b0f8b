// Package tags defines collision groups for colliders.
package tags

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Tag identifies a collision group.
type Tag uint8

const (
	Tiles       Tag = iota // Solid terrain and planks
	Player                 // The player's main hitbox
	Bosses                 // Lethal enemies
	Bushes                 // Slow the player down, never solid
	GroundCheck            // Feet probes
	Goal                   // Level exit trigger

	// Count is the number of defined tags.
	Count
)

// ErrUnknownTag is returned when a tag name does not match any defined tag.
var ErrUnknownTag = errors.New("unknown tag")

var names = [Count]string{
	Tiles:       "tiles",
	Player:      "player",
	Bosses:      "bosses",
	Bushes:      "bushes",
	GroundCheck: "ground_check",
	Goal:        "goal",
}

// String returns the canonical tag name.
func (t Tag) String() string {
	if t < Count {
		return names[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Valid reports whether t is a defined tag.
func (t Tag) Valid() bool {
	return t < Count
}

// All returns every defined tag in declaration order.
func All() []Tag {
	all := make([]Tag, Count)
	for i := range all {
		all[i] = Tag(i)
	}
	return all
}

// Parse looks up a tag by name. Matching ignores case and surrounding space.
func Parse(name string) (Tag, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == key {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// Set is a bitmask of tags.
type Set uint32

// Of builds a set from tags.
func Of(ts ...Tag) Set {
	var s Set
	for _, t := range ts {
		s = s.Add(t)
	}
	return s
}

// ParseSet builds a set from tag names.
func ParseSet(list []string) (Set, error) {
	var s Set
	for _, name := range list {
		t, err := Parse(name)
		if err != nil {
			return 0, err
		}
		s = s.Add(t)
	}
	return s, nil
}

// Has checks if the set contains a tag.
func (s Set) Has(t Tag) bool {
	return s&(1<<t) != 0
}

// Add adds a tag to the set.
func (s Set) Add(t Tag) Set {
	return s | 1<<t
}

// Remove removes a tag from the set.
func (s Set) Remove(t Tag) Set {
	return s &^ (1 << t)
}

// Intersects reports whether the sets share at least one tag.
func (s Set) Intersects(other Set) bool {
	return s&other != 0
}

// Empty reports whether the set has no tags.
func (s Set) Empty() bool {
	return s == 0
}

// Len returns the number of tags in the set.
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Tags returns the members of the set in ascending order.
func (s Set) Tags() []Tag {
	out := make([]Tag, 0, s.Len())
	for t := Tag(0); t < Count; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the member names in ascending tag order.
func (s Set) Names() []string {
	ts := s.Tags()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

// String formats the set as a pipe-separated list.
func (s Set) String() string {
	if s.Empty() {
		return "none"
	}
	return strings.Join(s.Names(), "|")
}
