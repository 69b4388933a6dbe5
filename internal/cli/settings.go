package cli

import (
	"fmt"

	"frvn-service/internal/config"
)

func loadSettings(envFile string) (config.Settings, error) {
	if envFile != "" {
		if _, err := config.LoadDotEnv(envFile); err != nil {
			return config.Settings{}, err
		}
	}

	s, err := config.Load()
	if err != nil {
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}
