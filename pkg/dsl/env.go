package dsl

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/jfmusicbot/botsetup/pkg/schema"
)

// EnvName maps a field key to its dotenv variable: jf-server -> JF_SERVER.
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// LoadEnvDefaults reads a dotenv file and returns reg with the defaults of
// matching fields replaced. Variables that name no field are ignored.
func LoadEnvDefaults(fs afero.Fs, path string, reg schema.Registry) (schema.Registry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return schema.Registry{}, fmt.Errorf("env: open %s: %w", path, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return schema.Registry{}, fmt.Errorf("env: parse %s: %w", path, err)
	}

	overrides := make(map[string]string)
	for _, key := range reg.Keys() {
		if v, ok := vars[EnvName(key)]; ok {
			overrides[key] = v
		}
	}
	out, err := reg.WithDefaults(overrides)
	if err != nil {
		return schema.Registry{}, fmt.Errorf("env: %s: %w", path, err)
	}
	return out, nil
}
