// Package analytics records served queries off the request path. The
// recorder accepts one record per query, enqueues it without blocking, and a
// background worker persists it; a failed or dropped write is logged and
// counted, never surfaced to the caller.
package analytics
