package config

const (
	defaultConfigPath     = "~/.config/dedup/config.toml"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogColor       = "auto"
	defaultJournalEnabled = true
	defaultJournalFile    = "journal.db"
	defaultExiftoolBinary = "exiftool"
	defaultCameraTag      = "WhatsApp"
)

// Default returns a Config populated with repository defaults. The source
// directory is left empty and resolves to the working directory during
// normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Color:  defaultLogColor,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
		Timestamps: Timestamps{
			ExiftoolBinary: defaultExiftoolBinary,
			Make:           defaultCameraTag,
			Model:          defaultCameraTag,
		},
	}
}
