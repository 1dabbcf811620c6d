package store

// KeyValue is the persistent backend the encrypted store writes
// through: string bucket names mapped to opaque blobs. The sqlite
// repository implements it in production; tests use an in-memory map.
type KeyValue interface {
	Get(keys []string) (map[string]string, error)
	Set(values map[string]string) error
	Clear() error
}
