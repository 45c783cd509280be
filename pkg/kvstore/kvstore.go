// Package kvstore provides the durable local key-value store that backs
// every collection in the storefront. Values are opaque JSON blobs; there
// is no schema versioning or migration logic.
package kvstore

import "errors"

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}
