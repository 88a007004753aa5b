package mailbox

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const emlExt = ".eml"

// DirMailbox serves .eml files from root/folder. The UID of a message is its
// file name without the extension.
type DirMailbox struct {
	root   string
	folder string
}

func NewDirMailbox(root, folder string) (*DirMailbox, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(filepath.Join(abs, folder))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrMailQuery, folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMailQuery, folder)
	}
	return &DirMailbox{root: abs, folder: folder}, nil
}

func (d *DirMailbox) Server() string { return "dir://" + filepath.ToSlash(d.root) }
func (d *DirMailbox) Folder() string { return d.folder }

func (d *DirMailbox) path(uid string) string {
	return filepath.Join(d.root, d.folder, uid+emlExt)
}

func (d *DirMailbox) Search(ctx context.Context, q Query) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, d.folder))
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrMailQuery, d.folder, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), emlExt) {
			names = append(names, strings.TrimSuffix(e.Name(), emlExt))
		}
	}
	sort.Strings(names)

	var uids []string
	for _, uid := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(d.path(uid))
		if err != nil {
			// Removed between listing and reading.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: read %s: %w", ErrMailQuery, uid, err)
		}
		m, err := ParseMessage(uid, raw)
		if err != nil {
			continue
		}
		if q.Match(m) {
			uids = append(uids, uid)
		}
	}
	return uids, nil
}

func (d *DirMailbox) Fetch(ctx context.Context, uids []string) ([]Message, error) {
	out := make([]Message, 0, len(uids))
	for _, uid := range uids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(d.path(uid))
		if err != nil {
			return nil, fmt.Errorf("%w: fetch %s: %w", ErrMailQuery, uid, err)
		}
		m, err := ParseMessage(uid, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
