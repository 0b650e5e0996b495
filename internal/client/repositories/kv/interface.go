// Package kv is the client-local persistent key/value store. Drafts and
// one-shot UI flags live here, partitioned by namespace.
package kv

import "context"

// Repository is a namespaced key/value store.
//
// Get returns (nil, nil) when the key is absent, so callers can distinguish
// "no value" from a storage failure.
type Repository interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
}
