package dedupe

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// LevelDBBackend is a disk backed string set for outputs that may not fit
// in memory
type LevelDBBackend struct {
	storage *hybrid.HybridMap
}

func NewLevelDBBackend() *LevelDBBackend {
	l := &LevelDBBackend{}
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		gologger.Fatal().Msgf("failed to create temp dir for spanx dedupe got: %v", err)
	}
	l.storage = db
	return l
}

// Upsert adds elem and reports whether it was not present yet
func (l *LevelDBBackend) Upsert(elem string) bool {
	if _, ok := l.storage.Get(elem); ok {
		return false
	}
	if err := l.storage.Set(elem, nil); err != nil {
		gologger.Error().Msgf("dedupe: leveldb: got %v while writing %v", err, elem)
	}
	return true
}

func (l *LevelDBBackend) Cleanup() {
	_ = l.storage.Close()
}

// Backend tracks already seen strings
type Backend interface {
	// Upsert adds elem and reports whether it was new
	Upsert(elem string) bool
	// Cleanup releases resources held by the backend
	Cleanup()
}

// New returns a disk backed set when onDisk is true, otherwise an in
// memory one
func New(onDisk bool) Backend {
	if onDisk {
		return NewLevelDBBackend()
	}
	return NewMapBackend[string]()
}
