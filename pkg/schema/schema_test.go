package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmusicbot/botsetup/pkg/validate"
)

func TestDefault(t *testing.T) {
	t.Run("Should list the bot keys in file order", func(t *testing.T) {
		reg := Default()
		assert.Equal(t, []string{
			"discord-token", "jf-server", "jf-apikey", "command-group",
			"search-limit", "enable-debug", "debug-server",
		}, reg.Keys())
		assert.Equal(t, reg.Keys(), reg.RequiredKeys())
	})

	t.Run("Should accept every default through its own check", func(t *testing.T) {
		for _, f := range Default().Fields() {
			if f.HasDefault() {
				assert.True(t, f.Check(f.DefaultText()), f.Key)
			}
		}
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("Should reject duplicate keys", func(t *testing.T) {
		_, err := NewRegistry(Field{Key: "a"}, Field{Key: "a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("Should reject empty keys and unknown types", func(t *testing.T) {
		_, err := NewRegistry(Field{Key: " "})
		require.Error(t, err)
		_, err = NewRegistry(Field{Key: "a", Type: "float"})
		require.Error(t, err)
	})

	t.Run("Should reject defaults that fail the field check", func(t *testing.T) {
		_, err := NewRegistry(Field{Key: "limit", Type: TypeInteger, Default: 500, Validator: validate.BoundedInt(1, 100)})
		require.Error(t, err)
		_, err = NewRegistry(Field{Key: "ratio", Default: 1.5})
		require.Error(t, err)
	})

	t.Run("Should default the type to string", func(t *testing.T) {
		reg, err := NewRegistry(Field{Key: "a"})
		require.NoError(t, err)
		f, ok := reg.Lookup("a")
		require.True(t, ok)
		assert.Equal(t, TypeString, f.Type)
	})

	t.Run("Should not expose internal storage", func(t *testing.T) {
		reg := MustRegistry(Field{Key: "a"})
		fields := reg.Fields()
		fields[0].Key = "changed"
		assert.Equal(t, []string{"a"}, reg.Keys())
	})
}

func TestField_Check(t *testing.T) {
	t.Run("Should enforce integer parsing before the validator", func(t *testing.T) {
		f := Field{Key: "n", Type: TypeInteger}
		assert.True(t, f.Check("42"))
		assert.False(t, f.Check("forty"))
	})

	t.Run("Should enforce boolean parsing", func(t *testing.T) {
		f, _ := Default().Lookup(KeyEnableDebug)
		assert.True(t, f.Check("true"))
		assert.True(t, f.Check("False"))
		assert.False(t, f.Check("maybe"))
	})

	t.Run("Should accept anything for untyped fields without validator", func(t *testing.T) {
		f := Field{Key: "s", Type: TypeString}
		assert.True(t, f.Check(""))
		assert.True(t, f.Check("anything at all"))
	})

	t.Run("Should accept a disabled or eighteen digit debug server", func(t *testing.T) {
		f, _ := Default().Lookup(KeyDebugServer)
		assert.True(t, f.Check("false"))
		assert.True(t, f.Check("123456789012345678"))
		assert.False(t, f.Check("1234"))
	})
}

func TestField_Resolve(t *testing.T) {
	reg := Default()

	t.Run("Should return default literals for default text", func(t *testing.T) {
		limit, _ := reg.Lookup(KeySearchLimit)
		assert.Equal(t, 25, limit.Resolve("25"))

		debug, _ := reg.Lookup(KeyEnableDebug)
		assert.Equal(t, false, debug.Resolve("false"))
		assert.Equal(t, false, debug.Resolve("False"))

		server, _ := reg.Lookup(KeyDebugServer)
		assert.Equal(t, false, server.Resolve("FALSE"))
	})

	t.Run("Should store every disabled spelling as the default literal", func(t *testing.T) {
		server, _ := reg.Lookup(KeyDebugServer)
		for _, raw := range []string{"false", "False", "FALSE", "0", "f", "F"} {
			require.True(t, server.Check(raw), raw)
			assert.Equal(t, false, server.Resolve(raw), raw)
		}

		fromFile := Field{Key: "debug-server", Validator: validate.DisabledOr(validate.FixedLengthDigits(18)), Default: "false"}
		assert.Equal(t, "false", fromFile.Resolve("0"))
		assert.Equal(t, "false", fromFile.Resolve("f"))
	})

	t.Run("Should coerce typed answers", func(t *testing.T) {
		limit, _ := reg.Lookup(KeySearchLimit)
		assert.Equal(t, 50, limit.Resolve("50"))

		debug, _ := reg.Lookup(KeyEnableDebug)
		assert.Equal(t, true, debug.Resolve("true"))

		server, _ := reg.Lookup(KeyDebugServer)
		assert.Equal(t, "123456789012345678", server.Resolve("123456789012345678"))
	})

	t.Run("Should keep string answers verbatim", func(t *testing.T) {
		group, _ := reg.Lookup(KeyCommandGroup)
		assert.Equal(t, "JFMusic", group.Resolve("JFMusic"))
		assert.Equal(t, "jfmusic", group.Resolve("jfmusic"))
	})

	t.Run("Should map an empty answer without default to nil", func(t *testing.T) {
		f := Field{Key: "note", Type: TypeString}
		assert.Nil(t, f.Resolve(""))
	})
}

func TestRegistry_WithDefaults(t *testing.T) {
	t.Run("Should replace defaults with coerced values", func(t *testing.T) {
		reg, err := Default().WithDefaults(map[string]string{
			KeySearchLimit:  "10",
			KeyDiscordToken: "tok",
			"not-a-field":   "ignored",
		})
		require.NoError(t, err)

		limit, _ := reg.Lookup(KeySearchLimit)
		assert.Equal(t, 10, limit.Default)
		token, _ := reg.Lookup(KeyDiscordToken)
		assert.Equal(t, "tok", token.Default)

		original, _ := Default().Lookup(KeySearchLimit)
		assert.Equal(t, 25, original.Default)
	})

	t.Run("Should reject overrides that fail the field check", func(t *testing.T) {
		_, err := Default().WithDefaults(map[string]string{KeyJFServer: "ftp://bad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), KeyJFServer)
	})
}

func TestRegistry_Verify(t *testing.T) {
	reg := Default()
	valid := func() *Configuration {
		cfg := NewConfiguration()
		cfg.Set(KeyDiscordToken, "abc123")
		cfg.Set(KeyJFServer, "https://media.example.com")
		cfg.Set(KeyJFAPIKey, "key1")
		cfg.Set(KeyCommandGroup, "jfmusic")
		cfg.Set(KeySearchLimit, 25)
		cfg.Set(KeyEnableDebug, false)
		cfg.Set(KeyDebugServer, false)
		return cfg
	}

	t.Run("Should pass a complete valid document", func(t *testing.T) {
		assert.NoError(t, reg.Verify(valid()))
	})

	t.Run("Should report every problem at once", func(t *testing.T) {
		cfg := valid()
		cfg.Set(KeyJFServer, "ftp://bad.example.com")
		cfg.Set(KeySearchLimit, 0)
		cfg.Set("extra", "x")
		missing := NewConfiguration()
		for _, e := range cfg.Entries() {
			if e.Key != KeyJFAPIKey {
				missing.Set(e.Key, e.Value)
			}
		}

		err := reg.Verify(missing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid value "ftp://bad.example.com"`)
		assert.Contains(t, err.Error(), `key "search-limit"`)
		assert.Contains(t, err.Error(), `unknown key "extra"`)
		assert.Contains(t, err.Error(), `missing required key "jf-apikey"`)
	})
}
