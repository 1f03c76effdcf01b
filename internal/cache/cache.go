package cache

// Cache holds whole serialized snapshots per key.
// A value is only stored if it comes from the most recently started fetch for
// that key, so an older in-flight fetch can never overwrite a newer one.
type Cache interface {
	Get(key string) ([]byte, bool)
	Begin(key string) uint64
	Commit(key string, token uint64, value []byte) bool
	Cancel(key string, token uint64)
	Invalidate(key string)
}
