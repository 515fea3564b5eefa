// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read  Permissions = 1
	Write             = 1<<1 | Read

	None Permissions = 0
	All              = Read | Write
)

// Keys holds the name of each key touched by a transaction and its
// permission (Read/Write). To prevent duplicate insertions from overriding
// the original permissions, use the Add function below.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add takes the union of the existing and new permission for [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
