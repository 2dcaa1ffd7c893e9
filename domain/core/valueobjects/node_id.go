package valueobjects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NodeID is a value object representing a unique node identifier.
// Identifiers are assigned by the kernel from a monotonic sequence and are
// never reused or mutated; only a full graph reset restarts the sequence.
type NodeID struct {
	value string
}

// NodeIDFromSequence creates the NodeID for a given sequence number.
func NodeIDFromSequence(seq uint64) NodeID {
	return NodeID{value: fmt.Sprintf("n%d", seq)}
}

// ParseNodeID creates a NodeID from an externally supplied string.
func ParseNodeID(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	if !isValidNodeID(id) {
		return NodeID{}, errors.New("node ID must have the form n<sequence>")
	}
	return NodeID{value: id}, nil
}

// String returns the string representation of the NodeID.
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal.
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value.
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("NodeID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

func isValidNodeID(s string) bool {
	rest, ok := strings.CutPrefix(s, "n")
	if !ok || rest == "" {
		return false
	}
	_, err := strconv.ParseUint(rest, 10, 64)
	return err == nil
}
