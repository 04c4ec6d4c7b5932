package schema

import "github.com/jfmusicbot/botsetup/pkg/validate"

// DefaultPath is where the bot looks for its configuration, relative to its
// working directory.
const DefaultPath = "config.yml"

// Keys read by the bot. They must match byte for byte.
const (
	KeyDiscordToken = "discord-token"
	KeyJFServer     = "jf-server"
	KeyJFAPIKey     = "jf-apikey"
	KeyCommandGroup = "command-group"
	KeySearchLimit  = "search-limit"
	KeyEnableDebug  = "enable-debug"
	KeyDebugServer  = "debug-server"
)

// Default returns the schema of the Jellyfin music bot configuration.
func Default() Registry {
	return MustRegistry(
		Field{
			Key:         KeyDiscordToken,
			Description: "Enter your Discord-Bot Token",
			Type:        TypeString,
			Validator:   validate.NonEmpty,
			Required:    true,
		},
		Field{
			Key:         KeyJFServer,
			Description: "Enter the URL to the Jellyfin Server",
			Type:        TypeString,
			Validator:   validate.URL,
			Required:    true,
		},
		Field{
			Key:         KeyJFAPIKey,
			Description: "Enter a valid API key for the configured Jellyfin Server",
			Type:        TypeString,
			Validator:   validate.NonEmpty,
			Required:    true,
		},
		Field{
			Key:         KeyCommandGroup,
			Description: "Enter the desired slashcommand group for your bot",
			Type:        TypeString,
			Validator:   validate.CommandGroup,
			Required:    true,
			Default:     "jfmusic",
		},
		Field{
			Key:         KeySearchLimit,
			Description: "Enter the Number of items to display when searching (min: 1, max: 100)",
			Type:        TypeInteger,
			Validator:   validate.BoundedInt(1, 100),
			Required:    true,
			Default:     25,
		},
		Field{
			Key:         KeyEnableDebug,
			Description: "Enter whether you want to enable Debug mode or not (true/false)",
			Type:        TypeBoolean,
			Required:    true,
			Default:     false,
		},
		Field{
			Key:         KeyDebugServer,
			Description: "Enter the Server ID of a Debug Server (Discord Server ID, false to disable)",
			Type:        TypeString,
			Validator:   validate.DisabledOr(validate.FixedLengthDigits(18)),
			Required:    true,
			Default:     false,
		},
	)
}
