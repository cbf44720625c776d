// Package bftree implements an in-memory, ordered key/value index built as
// a buffered tree: a tree of nodes whose keys are grouped into containers
// (sorted runs of key/value payloads), where inserts and deletes are
// absorbed into the first container that may hold them and later migrated
// downward once thresholds are exceeded.
//
// The structure amortizes the cost of maintaining an ordered multi-level
// index by batching updates at each level instead of propagating every
// insert straight to a leaf. It is single-owner and not safe for concurrent
// use; callers needing concurrency must serialize access externally.
package bftree
