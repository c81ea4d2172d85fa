package util

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ReadConfig loads .env (when present) and ./data/config.* into viper, then binds the environment.
// A missing config file is not an error; defaults set with viper.SetDefault still apply.
func ReadConfig(configPath string) error {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.AddConfigPath(configPath)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
