package config

const (
	defaultConfigPath  = "~/.config/slidesync/config.toml"
	projectConfigName  = "slidesync.toml"
	historyFileName    = "history.db"
	defaultStateDir    = "~/.local/share/slidesync"
	defaultLogDir      = "~/.local/share/slidesync/logs"
	defaultOutputPath  = "slides-timing.json"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultOutputFmt   = "timing"
	defaultOrder       = "contract_first"
	defaultThreshold   = 90
	defaultMaxOffset   = 3
	defaultBlendWeight = 0.5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Alignment: Alignment{
			MatchThreshold:  defaultThreshold,
			MaxOffset:       defaultMaxOffset,
			BlendWeight:     defaultBlendWeight,
			CorrectionOrder: defaultOrder,
		},
		Output: Output{
			Path:   defaultOutputPath,
			Format: defaultOutputFmt,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		History: History{Enabled: true},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
