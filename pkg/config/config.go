package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	fixerr "github.com/arthur-debert/fixtree/pkg/errors"
)

// FilePermissions holds the modes applied when materializing fixtures
type FilePermissions struct {
	Directory os.FileMode `koanf:"directory"`
	File      os.FileMode `koanf:"file"`
}

// Config holds the tunable behavior of fixture tree creation
type Config struct {
	FilePermissions FilePermissions `koanf:"file_permissions"`
	// TempPrefix is the prefix for ephemeral root directories
	TempPrefix string `koanf:"temp_prefix"`
	// FixtureDir is the fixed subdirectory name inside an ephemeral root
	FixtureDir string `koanf:"fixture_dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		FilePermissions: FilePermissions{
			Directory: 0755,
			File:      0644,
		},
		TempPrefix: "fixtree-",
		FixtureDir: "fixture",
	}
}

func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"file_permissions": map[string]interface{}{
			"directory": uint32(d.FilePermissions.Directory),
			"file":      uint32(d.FilePermissions.File),
		},
		"temp_prefix": d.TempPrefix,
		"fixture_dir": d.FixtureDir,
	}
}

// Load resolves the effective configuration: built-in defaults, then an
// optional fixtree.toml in the working directory, then FIXTREE_* env vars.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fixerr.Wrap(err, fixerr.ErrConfigLoad, "failed to load default config")
	}

	configPath := "fixtree.toml"
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fixerr.Wrapf(err, fixerr.ErrConfigLoad, "failed to load config from %s", configPath)
		}
	}

	err := k.Load(env.Provider("FIXTREE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "FIXTREE_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, fixerr.Wrap(err, fixerr.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToFileModeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fixerr.Wrap(err, fixerr.ErrConfigLoad, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

var (
	activeOnce sync.Once
	activeCfg  *Config
)

// Active returns the lazily-loaded process-wide configuration.
// Load failures fall back to the built-in defaults.
func Active() *Config {
	activeOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			activeCfg = Default()
			return
		}
		activeCfg = cfg
	})
	return activeCfg
}

// stringToFileModeHookFunc decodes octal strings such as "0644" into an
// os.FileMode; env vars have no integer types, so modes arrive as strings.
func stringToFileModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(os.FileMode(0)) {
			return data, nil
		}
		mode, err := strconv.ParseUint(data.(string), 8, 32)
		if err != nil {
			return nil, fixerr.Wrapf(err, fixerr.ErrConfigLoad, "invalid file mode %q", data)
		}
		return os.FileMode(mode), nil
	}
}
