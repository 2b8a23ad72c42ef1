/*
Package storage implements the tagged storage descriptors of §3: a node's
"storage" attribute tells the codegen pass where its operand's value lives
before the value itself can be emitted as instruction bytes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package storage

import "fmt"

// Kind classifies a Storage value's variant.
type Kind uint8

const (
	// Immediate identifies an ImmediateStorage.
	Immediate Kind = iota
	// Absolute identifies an AbsoluteStorage.
	Absolute
)

func (k Kind) String() string {
	switch k {
	case Immediate:
		return "immediate"
	case Absolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// Storage is a tagged descriptor of where an operand's value lives: either
// an Immediate literal embedded in the instruction, or an Absolute memory
// address.
type Storage interface {
	Kind() Kind
	Width() int
	fmt.Stringer
}

// ImmediateStorage is a literal operand embedded directly in an
// instruction's bytes.
type ImmediateStorage struct {
	Value int
	width int
}

// NewImmediate builds an ImmediateStorage holding value, declared width
// bytes wide.
func NewImmediate(value, width int) ImmediateStorage {
	return ImmediateStorage{Value: value, width: width}
}

// Kind implements Storage.
func (ImmediateStorage) Kind() Kind { return Immediate }

// Width implements Storage.
func (s ImmediateStorage) Width() int { return s.width }

func (s ImmediateStorage) String() string {
	return fmt.Sprintf("immediate(%d, width=%d)", s.Value, s.width)
}

// AbsoluteStorage is an operand living at a fixed memory address, set once
// upstream storage-layout passes have resolved it (see Relocated).
type AbsoluteStorage struct {
	Address  int
	width    int
	resolved bool
}

// NewAbsolute builds an AbsoluteStorage for address, declared width bytes
// wide, already resolved.
func NewAbsolute(address, width int) AbsoluteStorage {
	return AbsoluteStorage{Address: address, width: width, resolved: true}
}

// Unresolved builds an AbsoluteStorage whose address has not yet been
// assigned by a layout pass; emitting it is an error until Relocated sets
// an address.
func Unresolved(width int) AbsoluteStorage {
	return AbsoluteStorage{width: width}
}

// Kind implements Storage.
func (AbsoluteStorage) Kind() Kind { return Absolute }

// Width implements Storage.
func (s AbsoluteStorage) Width() int { return s.width }

// Resolved reports whether an address has been assigned.
func (s AbsoluteStorage) Resolved() bool { return s.resolved }

// Relocated returns a copy of s with its address set to addr, per §6:
// "Relocation is the responsibility of upstream passes that must have set
// storage.address on every AbsoluteStorage operand."
func (s AbsoluteStorage) Relocated(addr int) AbsoluteStorage {
	s.Address, s.resolved = addr, true
	return s
}

func (s AbsoluteStorage) String() string {
	if !s.resolved {
		return fmt.Sprintf("absolute(<unresolved>, width=%d)", s.width)
	}
	return fmt.Sprintf("absolute(0x%04X, width=%d)", s.Address, s.width)
}
