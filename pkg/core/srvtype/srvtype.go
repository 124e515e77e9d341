// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package srvtype maintains the descriptors of the supported database
// server flavors. Each flavor, such as the community PostgreSQL or the
// EDB Advanced Server, is described by one ServerType instance which
// maps its unique type key to the UI presentation metadata and to the
// resolution logic for the command-line utility programs (pg_dump,
// pg_restore, etc.) of that flavor.
//
// Descriptors are collected in an explicit Registry instance which is
// created and populated by the application startup routine, before any
// request handler may run, and is read-only thereafter. Therefore, no
// locking is required for the concurrent Lookup and Types calls.
package srvtype

import (
	"fmt"
	"sort"
)

// ServerType describes one supported database server flavor.
// Identity fields are fixed at registration time. The user-configured
// utility paths are not a part of this descriptor; they live in the
// preferences repository and are passed to the UtilityPath method by
// its caller.
type ServerType struct {
	// Key is the short unique type key, such as "pg" or "ppas".
	Key string
	// Description is the human-readable flavor name.
	Description string
	// Priority orders the UI presentation of server types.
	// A type with a higher priority is presented earlier.
	Priority int
}

// Icon returns the file name of the icon representing this server
// type in the frontend tree view.
func (st *ServerType) Icon() string {
	return st.Key + ".svg"
}

// String returns a one-line description of this server type.
func (st *ServerType) String() string {
	return fmt.Sprintf(
		"Type: %s, Description: %s, Priority: %d",
		st.Key, st.Description, st.Priority,
	)
}

// Registry is an append-only collection of ServerType descriptors,
// keyed by their unique type keys. The zero value is not usable;
// instances must be created by the New function.
type Registry struct {
	types map[string]*ServerType
}

// New creates an empty server types registry.
func New() *Registry {
	return &Registry{
		types: make(map[string]*ServerType),
	}
}

// Register adds the given descriptor to this registry. Registering two
// descriptors with the same type key indicates a bug in the caller
// code (e.g., two plugins claiming one key), not a runtime condition
// to recover from, and so yields an error which the startup routine
// is supposed to treat as fatal.
func (r *Registry) Register(st *ServerType) error {
	if _, ok := r.types[st.Key]; ok {
		return fmt.Errorf("server type %q is already registered", st.Key)
	}
	r.types[st.Key] = st
	return nil
}

// Lookup finds a registered descriptor by its type key.
func (r *Registry) Lookup(key string) (*ServerType, bool) {
	st, ok := r.types[key]
	return st, ok
}

// Types returns all registered descriptors, sorted by their priority
// in the descending order. Descriptors with equal priorities keep a
// stable relative order, sorted by their type keys, so repeated calls
// report one consistent UI ordering.
func (r *Registry) Types() []*ServerType {
	sts := make([]*ServerType, 0, len(r.types))
	for _, st := range r.types {
		sts = append(sts, st)
	}
	sort.Slice(sts, func(i, j int) bool {
		if sts[i].Priority != sts[j].Priority {
			return sts[i].Priority > sts[j].Priority
		}
		return sts[i].Key < sts[j].Key
	})
	return sts
}

// Default server type keys which are registered by the startup routine
// of this application. Third-party extensions may register additional
// types with their own keys.
const (
	// KeyPostgres is the type key of the community PostgreSQL flavor.
	KeyPostgres = "pg"
	// KeyEDBAS is the type key of the EDB Advanced Server flavor.
	KeyEDBAS = "ppas"
)

// Defaults creates a registry which is populated with the descriptors
// of the built-in server types.
func Defaults() (*Registry, error) {
	r := New()
	for _, st := range []*ServerType{
		{
			Key:         KeyPostgres,
			Description: "PostgreSQL",
			Priority:    -1,
		},
		{
			Key:         KeyEDBAS,
			Description: "EDB Advanced Server",
			Priority:    2,
		},
	} {
		if err := r.Register(st); err != nil {
			return nil, fmt.Errorf("registering %q: %w", st.Key, err)
		}
	}
	return r, nil
}
