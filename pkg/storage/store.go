// Copyright © 2018 One Concern

package storage

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
)

const (
	// NoOverWrite makes a Put fail if the object exists already
	NoOverWrite = true
	// OverWrite lets a Put replace an existing object
	OverWrite = false
)

// Store implementations know how to write entries to a K/V model.Store.
//
// Typically this is something file system-like.
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, bool) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	// KeysPrefix lists keys starting with prefix, in lexical order.
	//
	// When delimiter is not empty, keys sharing the same part up to the first delimiter after the prefix
	// are collapsed into that common part. At most count keys are returned when count > 0, with a
	// token to resume the listing. An empty token means the listing is complete.
	KeysPrefix(ctx context.Context, pageToken, prefix, delimiter string, count int) ([]string, string, error)
	Clear(context.Context) error
}

// ReadAll reads an object from a store
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return ioutil.ReadAll(reader)
}

// PutBytes writes an object to a store
func PutBytes(ctx context.Context, store Store, key string, object []byte, exclusive bool) error {
	return store.Put(ctx, key, bytes.NewReader(object), exclusive)
}

// AllKeysPrefix lists all keys starting with prefix, iterating over pages
func AllKeysPrefix(ctx context.Context, store Store, prefix, delimiter string) ([]string, error) {
	const pageSize = 1000
	var (
		keys  []string
		token string
	)
	for {
		page, next, err := store.KeysPrefix(ctx, token, prefix, delimiter, pageSize)
		if err != nil {
			return nil, err
		}
		keys = append(keys, page...)
		if next == "" {
			return keys, nil
		}
		token = next
	}
}
