package dispatch

// InvalidBlockStorage is the operator-configured policy for persisting
// blocks that fail verification, threaded opaquely into the gossip-block
// processing closure. The facade never opens or writes to the path
// itself; it is the gossip-block processing body's concern.
type InvalidBlockStorage struct {
	enabled bool
	path    string
}

// EnabledInvalidBlockStorage configures invalid-block storage at path.
func EnabledInvalidBlockStorage(path string) InvalidBlockStorage {
	return InvalidBlockStorage{enabled: true, path: path}
}

// DisabledInvalidBlockStorage turns invalid-block storage off.
func DisabledInvalidBlockStorage() InvalidBlockStorage {
	return InvalidBlockStorage{}
}

// Enabled reports whether invalid-block storage is configured.
func (s InvalidBlockStorage) Enabled() bool { return s.enabled }

// Path returns the configured storage directory. Only meaningful when
// Enabled returns true.
func (s InvalidBlockStorage) Path() string { return s.path }
