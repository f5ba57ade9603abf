// SPDX-License-Identifier: MIT

package molecule

import "errors"

// Sentinel errors for molecule set operations.
var (
	// ErrEmptyName indicates an empty molecule or mapping name.
	ErrEmptyName = errors.New("molecule: name is empty")

	// ErrEmptyID indicates an empty entity ID.
	ErrEmptyID = errors.New("molecule: entity ID is empty")

	// ErrDuplicateID indicates an entity ID given twice in one table.
	ErrDuplicateID = errors.New("molecule: duplicate entity ID")

	// ErrUnknownID indicates a referenced entity ID that is absent from its table.
	ErrUnknownID = errors.New("molecule: unknown entity ID")

	// ErrLengthMismatch indicates an attribute column whose length differs from its table or mapping.
	ErrLengthMismatch = errors.New("molecule: column length mismatch")

	// ErrMoleculeNotFound indicates a molecule type that is not registered in the set.
	ErrMoleculeNotFound = errors.New("molecule: molecule type not found")

	// ErrDuplicateMolecule indicates a second registration of the same molecule type.
	ErrDuplicateMolecule = errors.New("molecule: molecule type already exists")

	// ErrMappingNotFound indicates a mapping name (or molecule pair) that is not registered.
	ErrMappingNotFound = errors.New("molecule: mapping not found")

	// ErrDuplicateMapping indicates a second mapping with the same name between the same molecule types.
	ErrDuplicateMapping = errors.New("molecule: mapping already exists")

	// ErrAmbiguousMapping indicates a mapping name that joins a molecule type to more than one partner type.
	ErrAmbiguousMapping = errors.New("molecule: ambiguous mapping")

	// ErrNilTable indicates a nil table or mapping argument.
	ErrNilTable = errors.New("molecule: nil table or mapping")
)
