package config

const (
	defaultDataDir    = "~/.local/share/flipbook"
	defaultExportDir  = "~/flipbook"
	defaultLogDir     = "~/.local/share/flipbook/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultMaxWidth   = 720
	defaultJPEGQual   = 80
	defaultWorkers    = 2
	defaultGIFQuality = 10
	defaultMaxDelayMS = 10000
	defaultNtfyWait   = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Capture: Capture{
			MaxWidth:    defaultMaxWidth,
			JPEGQuality: defaultJPEGQual,
		},
		Export: Export{
			Workers:    defaultWorkers,
			Quality:    defaultGIFQuality,
			MaxDelayMS: defaultMaxDelayMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyWait,
			Projects:       true,
			Capture:        false,
			Export:         true,
			Errors:         true,
		},
	}
}
