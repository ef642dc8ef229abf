package cmdlinegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config map[string]*cfgVal

// NewConfig creates a new configuration object primed with all the
// default values expected by both the interpreter and the generator.
func NewConfig() *Config {
	m := make(Config)
	// name of the cmdline_parse_ctx_t array closing the header
	m.SetString("output.context_name", "ctx")
	// include guard of the generated header
	m.SetString("output.header_guard", "GENERATED_COMMANDS_H")
	// program name written in the first comment of the header
	m.SetString("output.banner", "cmdlinegen")
	// path the stub file uses to include the header
	m.SetString("output.header_name", "")
	// reject commands with two tokens mapping to the same member
	m.SetBool("check.unique_fields", true)
	// reject lines deriving a canonical name already in use
	m.SetBool("check.unique_names", true)
	return &m
}

// Print writes every setting, sorted by path, to `w`
func (c *Config) Print(w io.Writer) {
	keys := make([]string, 0, len(*c))
	width := 0
	for k := range *c {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%s%s : %s\n", k, strings.Repeat(" ", width-len(k)), (*c)[k].String())
	}
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asString string
}

// assignType is mostly for preventing programming errors, it
// refuses to change the type of a value once it's been set
func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("Can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("Can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

func (v *cfgVal) String() string {
	switch v.typ {
	case cfgValType_Bool:
		return fmt.Sprintf("%t (bool)", v.asBool)
	case cfgValType_String:
		return fmt.Sprintf("%s (string)", v.asString)
	case cfgValType_Undefined:
		return "(undefined)"
	default:
		panic(fmt.Sprintf("unknown cfgVal type: %v", v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Bool)
	(*c)[path].asBool = v
}

func (c *Config) SetString(path string, v string) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_String)
	(*c)[path].asString = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	panic(fmt.Sprintf("Bool setting `%s` does not exist", path))
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_String)
		return val.asString
	}
	panic(fmt.Sprintf("String setting `%s` does not exist", path))
}

// fileConfig is the shape of a configuration file.  Pointers tell
// missing keys apart from zero values.
type fileConfig struct {
	Output struct {
		ContextName *string `toml:"context_name" yaml:"context_name"`
		HeaderGuard *string `toml:"header_guard" yaml:"header_guard"`
		Banner      *string `toml:"banner" yaml:"banner"`
	} `toml:"output" yaml:"output"`
	Check struct {
		UniqueFields *bool `toml:"unique_fields" yaml:"unique_fields"`
		UniqueNames  *bool `toml:"unique_names" yaml:"unique_names"`
	} `toml:"check" yaml:"check"`
}

// LoadConfigFile reads the settings in the file at `path` into `cfg`.
// The format comes from the extension: `.yaml` and `.yml` are YAML,
// anything else is TOML.  Settings missing from the file are left
// untouched.
func LoadConfigFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("can't read config file: %w", err)
	}
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &fc); err != nil {
			return fmt.Errorf("YAML parse error in %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(content, &fc); err != nil {
			return fmt.Errorf("TOML parse error in %s: %w", path, err)
		}
	}
	setString := func(key string, v *string) {
		if v != nil {
			cfg.SetString(key, *v)
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			cfg.SetBool(key, *v)
		}
	}
	setString("output.context_name", fc.Output.ContextName)
	setString("output.header_guard", fc.Output.HeaderGuard)
	setString("output.banner", fc.Output.Banner)
	setBool("check.unique_fields", fc.Check.UniqueFields)
	setBool("check.unique_names", fc.Check.UniqueNames)
	return nil
}
