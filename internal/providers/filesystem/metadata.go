package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Stat returns the metadata inventory for one path: size, kind, permission
// string, owner and MIME type. MIME detection reads only the file header
// and is skipped for directories and special files.
func (p *Provider) Stat(path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		kind := ErrIO
		if os.IsNotExist(err) {
			kind = ErrNotFound
		}
		return nil, opError("stat", path, kind, err)
	}

	owner, _ := statOwner(info)
	fi := &FileInfo{
		Name:     info.Name(),
		Path:     path,
		Size:     info.Size(),
		IsDir:    info.IsDir(),
		Mode:     Lsperms(modeOctal(info.Mode())),
		Owner:    owner,
		Modified: info.ModTime(),
	}

	if !info.IsDir() {
		fi.Extension = strings.ToLower(filepath.Ext(path))
		if info.Mode().IsRegular() && info.Size() > 0 {
			if mt, merr := mimetype.DetectFile(path); merr == nil {
				fi.MIME = mt.String()
			}
		}
	}
	return fi, nil
}

// modeOctal folds the portable mode flags back into octal bits.
func modeOctal(mode os.FileMode) uint32 {
	m := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		m |= 0o4000
	}
	if mode&os.ModeSetgid != 0 {
		m |= 0o2000
	}
	if mode&os.ModeSticky != 0 {
		m |= 0o1000
	}
	return m
}

// Lsperms renders mode bits as four octal digits (setuid/sticky, owner,
// group, other), e.g. 0755.
func Lsperms(mode uint32) string {
	const rwx = "01234567"
	bits := make([]byte, 4)
	bits[0] = rwx[(mode>>9)&7]
	bits[1] = rwx[(mode>>6)&7]
	bits[2] = rwx[(mode>>3)&7]
	bits[3] = rwx[(mode>>0)&7]
	return string(bits)
}
