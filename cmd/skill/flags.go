package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type config struct {
	RunAddr  string
	LogLevel string
	// Recipients: произносимое имя пользователя -> его идентификатор.
	Recipients map[string]string
}

func defaultConfig() config {
	return config{
		RunAddr:    ":8080",
		LogLevel:   "debug",
		Recipients: map[string]string{},
	}
}

type fileConfig struct {
	RunAddr    string            `toml:"run_addr"`
	LogLevel   string            `toml:"log_level"`
	Recipients map[string]string `toml:"recipients"`
}

// parseConfig собирает настройки: значения по умолчанию, затем файл,
// затем флаги и переменные окружения.
func parseConfig(args []string, lookupEnv func(string) (string, bool)) (config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("skill", flag.ContinueOnError)
	var runAddr, logLevel, configPath string
	fs.StringVar(&runAddr, "a", cfg.RunAddr, "address and port")
	fs.StringVar(&logLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&configPath, "c", "", "path to TOML config file")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if envConfig, ok := lookupEnv("CONFIG"); ok && envConfig != "" {
		configPath = envConfig
	}
	if configPath != "" {
		if err := loadConfigFile(configPath, &cfg); err != nil {
			return config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.RunAddr = runAddr
		case "l":
			cfg.LogLevel = logLevel
		}
	})

	if envRunAddr, ok := lookupEnv("RUN_ADDR"); ok && envRunAddr != "" {
		cfg.RunAddr = envRunAddr
	}
	if envLogLevel, ok := lookupEnv("LOG_LEVEL"); ok && envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	return cfg, nil
}

func loadConfigFile(path string, cfg *config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load skill config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load skill config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("run_addr") {
		cfg.RunAddr = strings.TrimSpace(raw.RunAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("recipients") {
		for name, id := range raw.Recipients {
			name = strings.TrimSpace(name)
			id = strings.TrimSpace(id)
			if name == "" || id == "" {
				return fmt.Errorf("load skill config: empty recipient %q = %q", name, id)
			}
			cfg.Recipients[name] = id
		}
	}
	return nil
}
