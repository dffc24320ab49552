// Package cache provides the content-addressing and coordination primitives of
// the drawing render cache.
//
// # Keys and Revisions
//
// A render is identified by the semantic content of the design and the inputs
// that change its output:
//
//	key      = sha256("<schema_hash>:<templatePackId>:<rendererKind>")
//	revision = key[:8]
//
// The [Keyer] interface abstracts key generation so that deployments can scope
// lock keys (for example per environment) without changing revisions, which are
// part of stored drawing paths and URLs.
//
// # Locks
//
// [Locker] serializes renders of the same key across process instances. The
// [RedisLocker] implementation uses SET NX PX with a random token and releases
// with a compare-and-delete script, so a lock that expired and was taken over by
// another instance is never released by the previous owner. [NullLocker] is the
// single-instance default.
//
// # Retries
//
// [RetryWithBackoff] retries transport failures marked with [Retryable]. It is
// used by the remote rendering worker client.
package cache
