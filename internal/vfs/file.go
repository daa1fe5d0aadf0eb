package vfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type fileNode struct {
	path string
	info os.FileInfo
}

// File is a cheap handle into an immutable Tree: a shared tree pointer plus
// a node id. Copying a File is copying two words.
type File struct {
	tree *Tree[fileNode]
	node NodeID
}

func (f File) data() fileNode {
	return f.tree.Data(f.node)
}

func (f File) Path() string {
	return f.data().path
}

func (f File) Name() string {
	return filepath.Base(f.Path())
}

// Stem is the filename without its final extension.
func (f File) Stem() string {
	name := f.Name()
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext)
}

// Ext is the filename's extension without the leading dot.
func (f File) Ext() string {
	ext := filepath.Ext(f.Name())
	return strings.TrimPrefix(ext, ".")
}

func (f File) Info() os.FileInfo {
	return f.data().info
}

func (f File) IsDir() bool {
	return f.Info().IsDir()
}

func (f File) IsFile() bool {
	return f.Info().Mode().IsRegular()
}

func (f File) Size() int64 {
	return f.Info().Size()
}

func (f File) Parent() (File, bool) {
	id, ok := f.tree.Parent(f.node)
	if !ok {
		return File{}, false
	}
	return File{tree: f.tree, node: id}, true
}

func (f File) Children() []File {
	return f.wrap(f.tree.Children(f.node))
}

func (f File) Siblings() []File {
	return f.wrap(f.tree.Siblings(f.node))
}

func (f File) Descendants() []File {
	return f.wrap(f.tree.Descendants(f.node))
}

func (f File) wrap(ids []NodeID) []File {
	out := make([]File, len(ids))
	for i, id := range ids {
		out[i] = File{tree: f.tree, node: id}
	}
	return out
}

// Walk builds an immutable snapshot of root. Symlinks and special files
// (devices, sockets, pipes) are dropped at insertion; only regular files
// and directories survive. Any path whose absolute form is in ignored is
// pruned, along with everything beneath it.
func Walk(root string, ignored map[string]struct{}) (File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return File{}, err
	}

	tree := NewTree[fileNode]()
	id, err := walkRec(tree, absRoot, nil, ignored)
	if err != nil {
		return File{}, err
	}
	if id == nil {
		return File{}, &os.PathError{Op: "walk", Path: root, Err: os.ErrInvalid}
	}
	return File{tree: tree, node: *id}, nil
}

func walkRec(tree *Tree[fileNode], path string, parent *NodeID, ignored map[string]struct{}) (*NodeID, error) {
	if _, skip := ignored[path]; skip {
		return nil, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, nil
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return nil, nil
	}

	fn := fileNode{path: path, info: info}
	var id NodeID
	if parent != nil {
		id = tree.InsertBelow(*parent, fn)
	} else {
		id = tree.InsertRoot(fn)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		sort.Strings(names)

		for _, name := range names {
			if _, err := walkRec(tree, filepath.Join(path, name), &id, ignored); err != nil {
				return nil, err
			}
		}
	}

	return &id, nil
}
