package fixtree

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// ParseYAML decodes a YAML document into a fixture node. Mappings become
// directories and string scalars become file contents; any other YAML
// shape (sequences, numbers, booleans, null) is rejected, consistent with
// FromMap's accepted leaf types.
func ParseYAML(data []byte) (Node, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "invalid YAML manifest")
	}
	return FromMap(raw)
}

// ParseTOML decodes a TOML document into a fixture node. Tables become
// directories and string values become file contents.
func ParseTOML(data []byte) (Node, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "invalid TOML manifest")
	}
	return FromMap(raw)
}

// LoadManifest reads a fixture manifest from path, dispatching on the
// file extension (.yaml, .yml or .toml).
func LoadManifest(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, errors.Newf(errors.ErrManifestParse, "unsupported manifest extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}
