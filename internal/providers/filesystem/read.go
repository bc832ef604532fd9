package filesystem

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/probeworks/hostagent/internal/shared/paths"
	"go.uber.org/zap"
)

const defaultBlockSize = 4096

// ReadOptions control one bounded read.
type ReadOptions struct {
	// Size is the expected length for special files, which report no
	// reliable size of their own. Ignored for regular files.
	Size uint64
	// BlockSize is the streaming chunk size. Defaults to 4096.
	BlockSize int
	// DryRun performs the open, size and policy checks without reading
	// any content.
	DryRun bool
	// PreserveTime restores the access/modification times after the read,
	// unless forensic preservation is disabled process-wide.
	PreserveTime bool
	// Blocking opens the file in blocking mode. Relevant for pipes.
	Blocking bool
}

// readHandle owns the open descriptor and the dropped privileges for one
// read operation. close releases both on every exit path.
type readHandle struct {
	f     *os.File
	guard *privilegeGuard
}

func (h *readHandle) close() {
	if h.f != nil {
		h.f.Close()
	}
	h.guard.release()
}

// openReadable opens path read-only, dropping privileges first when the
// process runs privileged. A refused drop means no handle is opened at all.
func openReadable(path string, blocking bool) (*readHandle, error) {
	guard, err := dropToParent(path)
	if err != nil {
		return nil, opError("open", path, ErrPermissionDenied, err)
	}

	f, err := os.OpenFile(path, openFlags(blocking), 0)
	if err != nil {
		guard.release()
		kind := ErrIO
		switch {
		case os.IsNotExist(err):
			kind = ErrNotFound
		case os.IsPermission(err):
			kind = ErrPermissionDenied
		}
		return nil, opError("open", path, kind, err)
	}
	return &readHandle{f: f, guard: guard}, nil
}

// ReadFile performs one bounded read of path, delivering content to sink.
// The effective size ceiling depends on the file's owner: root-owned files
// get the full ceiling, everything else the user ceiling. The check runs
// before any byte is read when the size is knowable, and per chunk when it
// is not.
func (p *Provider) ReadFile(path string, opts ReadOptions, sink Sink) error {
	_, err := p.read(path, opts, sink)
	return err
}

// ReadFileString reads the whole file into a string under the default
// options.
func (p *Provider) ReadFileString(path string) (string, error) {
	var b strings.Builder
	if err := p.ReadFile(path, ReadOptions{}, func(chunk []byte) {
		b.Write(chunk)
	}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ForensicReadFile reads the whole file and restores its access and
// modification times afterward, so the scan leaves no metadata trace.
func (p *Provider) ForensicReadFile(path string) (string, error) {
	var b strings.Builder
	if err := p.ReadFile(path, ReadOptions{PreserveTime: true}, func(chunk []byte) {
		b.Write(chunk)
	}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// CheckReadable runs the open, size and policy checks without reading any
// content and returns the canonical path. Used for pre-validation.
func (p *Provider) CheckReadable(path string) (string, error) {
	return p.read(path, ReadOptions{DryRun: true}, nil)
}

func (p *Provider) read(path string, opts ReadOptions, sink Sink) (string, error) {
	start := time.Now()
	if sink == nil {
		sink = func([]byte) {}
	}

	handle, err := openReadable(path, opts.Blocking)
	if err != nil {
		p.metrics.RecordReadDenied("open")
		return "", err
	}
	defer handle.close()

	info, err := handle.f.Stat()
	if err != nil {
		return "", opError("read", path, ErrIO, err)
	}
	if info.IsDir() {
		return "", opError("read", path, ErrIsADirectory, nil)
	}

	size := info.Size()
	if isSpecialFile(info) && opts.Size > 0 {
		// Special files report no reliable size; trust the caller's hint.
		size = int64(opts.Size)
	}

	limit := p.policy.LimitFor(isOwnerRoot(info))
	if size > 0 && uint64(size) >= limit {
		p.metrics.RecordReadDenied("limit")
		p.log.Debug("size exceeds read limit",
			zap.String("path", path),
			zap.Int64("size", size),
			zap.Uint64("limit", limit))
		return "", opError("read", path, ErrResourceLimit, nil)
	}

	if opts.DryRun {
		// The caller only wants the checks above; report where the path
		// canonicalizes to.
		canonical, cerr := paths.Canonicalize(path)
		if cerr != nil {
			return "", opError("read", path, ErrIO, cerr)
		}
		return canonical, nil
	}

	atime, mtime := fileTimes(info)

	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}

	var total int64
	if size == 0 {
		// Streaming path, shared by special files and zero-length regular
		// files. The ceiling is re-checked as the running total grows;
		// the chunk that crosses it is never delivered.
		buf := make([]byte, blockSize)
		for {
			n, rerr := handle.f.Read(buf)
			if n > 0 {
				total += int64(n)
				if uint64(total) >= limit {
					p.metrics.RecordReadDenied("limit")
					return "", opError("read", path, ErrResourceLimit, nil)
				}
				sink(buf[:n])
			}
			if rerr != nil {
				// EOF and a drained non-blocking pipe both end the
				// stream.
				break
			}
		}
	} else {
		content := make([]byte, size)
		if _, rerr := io.ReadFull(handle.f, content); rerr != nil {
			return "", opError("read", path, ErrIO, rerr)
		}
		total = size
		sink(content)
	}

	if opts.PreserveTime && !p.disableForensic {
		if cerr := os.Chtimes(path, atime, mtime); cerr != nil {
			p.log.Warn("failed to restore file times",
				zap.String("path", path), zap.Error(cerr))
		}
	}

	p.metrics.RecordRead(total, time.Since(start))
	return "", nil
}

// isSpecialFile reports whether the file is a device, pipe or socket.
func isSpecialFile(info os.FileInfo) bool {
	return info.Mode()&(os.ModeDevice|os.ModeCharDevice|os.ModeNamedPipe|os.ModeSocket) != 0
}

// isOwnerRoot reports whether the file is owned by the privileged account.
func isOwnerRoot(info os.FileInfo) bool {
	uid, ok := statOwner(info)
	return ok && uid == 0
}

// isOwnerCurrent reports whether the file is owned by the running identity.
func isOwnerCurrent(info os.FileInfo) bool {
	uid, ok := statOwner(info)
	return ok && int(uid) == os.Geteuid()
}
