package fixtree

import (
	"github.com/arthur-debert/fixtree/pkg/errors"
)

// Node is one level of a fixture description: either a file leaf holding
// the file's full contents, or a directory mapping names to child nodes.
// The two concrete shapes are produced by File, Bytes and Dir; no other
// implementations exist.
type Node interface {
	fixtureNode()
}

type fileNode []byte

type dirNode map[string]Node

func (fileNode) fixtureNode() {}
func (dirNode) fixtureNode()  {}

// File returns a leaf node whose file contents are the given string,
// written verbatim with no encoding transformation.
func File(contents string) Node {
	return fileNode(contents)
}

// Bytes returns a leaf node with raw byte contents.
func Bytes(data []byte) Node {
	return fileNode(data)
}

// Dir returns a directory node with the given entries. Entries may be nil
// or empty for an empty directory.
func Dir(entries map[string]Node) Node {
	return dirNode(entries)
}

// FromMap builds a directory node from a literal map. Values may be a
// string or []byte (file contents), a Node, or a nested map[string]interface{}
// (a subdirectory). Any other value type is rejected with ErrInvalidNode;
// nothing is silently coerced.
func FromMap(m map[string]interface{}) (Node, error) {
	return fromMapAt("", m)
}

func fromMapAt(at string, m map[string]interface{}) (Node, error) {
	entries := make(map[string]Node, len(m))
	for name, value := range m {
		child, err := fromValue(childPath(at, name), value)
		if err != nil {
			return nil, err
		}
		entries[name] = child
	}
	return dirNode(entries), nil
}

func fromValue(at string, value interface{}) (Node, error) {
	switch v := value.(type) {
	case string:
		return fileNode(v), nil
	case []byte:
		return fileNode(v), nil
	case Node:
		return v, nil
	case map[string]interface{}:
		return fromMapAt(at, v)
	default:
		return nil, errors.Newf(errors.ErrInvalidNode,
			"unsupported fixture value of type %T at %q: want string, []byte, Node or map[string]interface{}", value, at)
	}
}

func childPath(at, name string) string {
	if at == "" {
		return name
	}
	return at + "/" + name
}
