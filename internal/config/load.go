package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes configuration from file and environment variables.
// Precedence (highest first): flags bound by the CLI, STINT_* environment
// variables, the config file, defaults.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("stint")
	}

	viper.SetEnvPrefix("STINT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("trials", 5)
	viper.SetDefault("reps", 50)
	viper.SetDefault("size", 256)
	viper.SetDefault("timeout", 60*time.Second)
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Settings is the resolved run configuration.
type Settings struct {
	Trials      int
	Reps        int
	Size        int
	Timeout     time.Duration
	MetricsAddr string
}

// FromViper snapshots the current viper state into Settings.
func FromViper() Settings {
	return Settings{
		Trials:      viper.GetInt("trials"),
		Reps:        viper.GetInt("reps"),
		Size:        viper.GetInt("size"),
		Timeout:     viper.GetDuration("timeout"),
		MetricsAddr: viper.GetString("metrics_addr"),
	}
}
