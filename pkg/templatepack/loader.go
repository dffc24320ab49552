package templatepack

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabledraw/pkg/errors"
)

const (
	manifestFileName = "manifest.json"
	symbolsDir   = "symbols"
)

// Root is a named template root.
type Root struct {
	Name string
	FS   fs.FS
}

// DirRoot returns a root backed by a directory on disk.
func DirRoot(dir string) Root {
	return Root{Name: dir, FS: os.DirFS(dir)}
}

// Info is the summary reported by List.
type Info struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Paper   string `json:"paper"`
	Name    string `json:"name,omitempty"`
}

// Loader resolves template pack ids against an ordered list of roots.
type Loader struct {
	roots  []Root
	cache  *MemoCache
	Logger *log.Logger
}

// NewLoader creates a loader over roots. A nil cache gets a private one.
func NewLoader(cache *MemoCache, roots ...Root) *Loader {
	if cache == nil {
		cache = NewMemoCache()
	}
	return &Loader{roots: roots, cache: cache}
}

// Roots returns the configured roots in scan order.
func (l *Loader) Roots() []Root {
	return l.roots
}

// ClearCache drops every memoized pack.
func (l *Loader) ClearCache() {
	l.cache.Clear()
}

// Load returns the pack for id, memoized after the first successful load.
func (l *Loader) Load(id string) (*Pack, error) {
	if err := errors.ValidateTemplateID(id); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTemplateNotFound, err, "template pack %q not found", id)
	}
	if p, ok := l.cache.Get(id); ok {
		return p, nil
	}

	for _, root := range l.roots {
		dir, ok := resolveDir(root.FS, id)
		if !ok {
			continue
		}
		p, err := loadPack(root.FS, dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTemplateNotFound, err, "template pack %q in %s", id, root.Name)
		}
		l.debug("loaded template pack", "id", id, "dir", dir, "root", root.Name, "symbols", len(p.Symbols))
		l.cache.Put(id, p)
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeTemplateNotFound, "template pack %q not found", id)
}

// List returns every valid pack across all roots, sorted by id. When the same
// id appears in several roots the first root wins.
func (l *Loader) List() ([]Info, error) {
	seen := make(map[string]bool)
	var infos []Info
	for _, root := range l.roots {
		entries, err := fs.ReadDir(root.FS, ".")
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			data, err := fs.ReadFile(root.FS, path.Join(e.Name(), manifestFileName))
			if err != nil {
				continue
			}
			m, err := ParseManifest(data)
			if err != nil {
				l.debug("skipping invalid template pack", "dir", e.Name(), "root", root.Name, "err", err)
				continue
			}
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			infos = append(infos, Info{ID: m.ID, Version: m.Version, Paper: m.Paper, Name: m.Name})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

func (l *Loader) debug(msg string, kv ...any) {
	if l.Logger != nil {
		l.Logger.Debug(msg, kv...)
	}
}

// resolveDir finds the directory for id in fsys: an exact name first, then the
// lexically greatest "<id>@<version>" name.
func resolveDir(fsys fs.FS, id string) (string, bool) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", false
	}
	var best string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if name == id {
			return name, true
		}
		if strings.HasPrefix(name, id+"@") && name > best {
			best = name
		}
	}
	return best, best != ""
}

func loadPack(fsys fs.FS, dir string) (*Pack, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, manifestFileName))
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	p := &Pack{Manifest: *m, Dir: dir, Symbols: make(map[string]Symbol)}

	files, err := fs.Glob(fsys, path.Join(dir, symbolsDir, "*.svg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	for _, f := range files {
		content, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(path.Base(f), ".svg")
		p.Symbols[name] = ParseSymbol(name, string(content))
	}
	return p, nil
}
