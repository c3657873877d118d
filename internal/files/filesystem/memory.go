package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryNode is a file, directory or symbolic link in the tree.
type memoryNode struct {
	content []byte
	info    memoryFileInfo
}

// snapshot returns an immutable copy of the node's metadata under name.
func (n *memoryNode) snapshot() FileInfo {
	info := n.info
	return &info
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.Mutex
	nodes map[string]*memoryNode // absolute path -> node
	root  string

	renameFailures  map[string]error
	readDirFailures map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		nodes:           make(map[string]*memoryNode),
		root:            root,
		renameFailures:  make(map[string]error),
		readDirFailures: make(map[string]error),
	}
	mfs.ensureDirectoriesExist(path.Join(root, "x"))
	return mfs
}

// Root returns the root path the filesystem was created with.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// resolve turns p into a cleaned absolute virtual path; relative paths are
// taken relative to the root.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file, creating missing parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	mfs.nodes[absPath] = &memoryNode{
		content: []byte(content),
		info: memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds a directory, creating missing parent directories.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	mfs.ensureDirectoriesExist(path.Join(absPath, "x"))
}

// AddSymlink adds a symbolic link entry. Links are never followed.
func (mfs *MemoryFileSystem) AddSymlink(linkPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(linkPath)
	mfs.nodes[absPath] = &memoryNode{
		info: memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0777 | fs.ModeSymlink,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// FailRename makes every rename of oldPath return err.
func (mfs *MemoryFileSystem) FailRename(oldPath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.renameFailures[mfs.resolve(oldPath)] = err
}

// FailReadDir makes listing dirPath return err.
func (mfs *MemoryFileSystem) FailReadDir(dirPath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.readDirFailures[mfs.resolve(dirPath)] = err
}

// Paths returns every path in the tree, sorted.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	paths := make([]string, 0, len(mfs.nodes))
	for p := range mfs.nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ensureDirectoriesExist creates directory entries for all parents of p.
// Caller holds mu.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(p string) {
	dir := path.Dir(p)
	if dir == p {
		return
	}
	if _, exists := mfs.nodes[dir]; exists {
		return
	}

	mfs.nodes[dir] = &memoryNode{
		info: memoryFileInfo{
			name:    path.Base(dir),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
	if dir == "/" {
		return
	}
	mfs.ensureDirectoriesExist(dir)
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	if err, ok := mfs.readDirFailures[absPath]; ok {
		return nil, &fs.PathError{Op: "readdir", Path: absPath, Err: err}
	}

	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: absPath, Err: fs.ErrNotExist}
	}
	if !node.info.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: absPath, Err: fmt.Errorf("not a directory")}
	}

	var entries []FileInfo
	for p, child := range mfs.nodes {
		if p != absPath && path.Dir(p) == absPath {
			entries = append(entries, child.snapshot())
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(statPath)
	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: absPath, Err: fs.ErrNotExist}
	}
	return node.snapshot(), nil
}

// Exists implements FileSystemProvider.Exists
func (mfs *MemoryFileSystem) Exists(p string) (bool, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	_, exists := mfs.nodes[mfs.resolve(p)]
	return exists, nil
}

// Rename implements FileSystemProvider.Rename. Unlike rename(2) it refuses
// to replace an existing target, so tests catch any attempt to overwrite.
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	from := mfs.resolve(oldPath)
	to := mfs.resolve(newPath)
	linkErr := func(err error) error {
		return &fs.PathError{Op: "rename", Path: from + " " + to, Err: err}
	}

	if err, ok := mfs.renameFailures[from]; ok {
		return linkErr(err)
	}
	node, exists := mfs.nodes[from]
	if !exists {
		return linkErr(fs.ErrNotExist)
	}
	if _, taken := mfs.nodes[to]; taken {
		return linkErr(fs.ErrExist)
	}
	if parent, ok := mfs.nodes[path.Dir(to)]; !ok || !parent.info.IsDir() {
		return linkErr(fs.ErrNotExist)
	}

	delete(mfs.nodes, from)
	node.info.name = path.Base(to)
	mfs.nodes[to] = node

	if node.info.IsDir() {
		prefix := from + "/"
		var moved []string
		for p := range mfs.nodes {
			if strings.HasPrefix(p, prefix) {
				moved = append(moved, p)
			}
		}
		for _, p := range moved {
			child := mfs.nodes[p]
			delete(mfs.nodes, p)
			mfs.nodes[to+"/"+strings.TrimPrefix(p, prefix)] = child
		}
	}
	return nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	node, exists := mfs.nodes[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: absPath, Err: fs.ErrNotExist}
	}
	if node.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	if parent, ok := mfs.nodes[path.Dir(absPath)]; !ok || !parent.info.IsDir() {
		return &fs.PathError{Op: "open", Path: absPath, Err: fs.ErrNotExist}
	}
	if node, ok := mfs.nodes[absPath]; ok && node.info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.nodes[absPath] = &memoryNode{
		content: content,
		info: memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	if node, ok := mfs.nodes[absPath]; ok {
		if !node.info.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: absPath, Err: fs.ErrExist}
		}
		return nil
	}
	mfs.ensureDirectoriesExist(path.Join(absPath, "x"))
	return nil
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
