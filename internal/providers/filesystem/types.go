package filesystem

import (
	"time"

	"github.com/probeworks/hostagent/internal/infrastructure/config"
	"github.com/probeworks/hostagent/internal/infrastructure/logging"
	"github.com/probeworks/hostagent/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// GlobLimits controls what a pattern resolution returns.
type GlobLimits uint8

const (
	// GlobFiles includes regular-file matches.
	GlobFiles GlobLimits = 1 << iota
	// GlobFolders includes directory matches.
	GlobFolders
	// GlobNoCanon skips canonicalization of the pre-wildcard base.
	GlobNoCanon

	// GlobAll is the default: files and folders, canonicalization on.
	GlobAll = GlobFiles | GlobFolders
)

// Match is a resolved absolute path. Directory matches carry a trailing
// path separator; file matches do not.
type Match string

// IsDir reports whether the match is a directory.
func (m Match) IsDir() bool {
	if len(m) == 0 {
		return false
	}
	last := m[len(m)-1]
	return last == '/' || last == '\\'
}

// Path returns the match without the directory marker.
func (m Match) Path() string {
	if m.IsDir() {
		return string(m[:len(m)-1])
	}
	return string(m)
}

// ReadPolicy is the owner-dependent read ceiling. Files owned by the
// privileged account get MaxBytes; everything else gets the smaller of the
// two ceilings.
type ReadPolicy struct {
	MaxBytes     uint64
	MaxUserBytes uint64
}

// LimitFor returns the effective ceiling for a file given its ownership.
func (p ReadPolicy) LimitFor(rootOwned bool) uint64 {
	if rootOwned {
		return p.MaxBytes
	}
	return min(p.MaxBytes, p.MaxUserBytes)
}

// PolicyFrom derives a ReadPolicy from the process configuration.
func PolicyFrom(cfg config.ReadConfig) ReadPolicy {
	return ReadPolicy{
		MaxBytes:     cfg.MaxBytes,
		MaxUserBytes: cfg.MaxUserBytes,
	}
}

// Sink accepts one chunk of read content. The buffer is only valid for the
// duration of the call; implementations must copy what they keep.
type Sink func(chunk []byte)

// FileInfo is the metadata inventory for one discovered path.
type FileInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	Mode      string    `json:"mode"`
	Owner     uint32    `json:"owner"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension,omitempty"`
	MIME      string    `json:"mime,omitempty"`
}

// Provider exposes the safety-layer operations. The configuration captured
// at construction is read-only for the Provider's lifetime; a single
// Provider is safe for concurrent use.
type Provider struct {
	policy          ReadPolicy
	allowUnsafe     bool
	disableForensic bool
	log             *zap.Logger
	metrics         *monitoring.Metrics
}

// New creates a Provider from process configuration. Logger and metrics may
// be nil.
func New(cfg *config.Config, log *logging.Logger, metrics *monitoring.Metrics) *Provider {
	if cfg == nil {
		cfg = config.Default()
	}
	zl := zap.NewNop()
	if log != nil {
		zl = log.Logger
	}
	return &Provider{
		policy:          PolicyFrom(cfg.Read),
		allowUnsafe:     cfg.Safety.AllowUnsafe,
		disableForensic: cfg.Safety.DisableForensic,
		log:             zl,
		metrics:         metrics,
	}
}
