package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wiless/antarray"
	"github.com/wiless/antarray/pattern"
)

// AppConfig holds the settings of the tool itself, the array is decoded
// separately into antarray.Config.
type AppConfig struct {
	Name    string
	FloorDb float64
	Matlab  bool
	PNG     bool
	JSON    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("output.name", "afpattern")
	v.SetDefault("output.floor", pattern.DefaultFloorDb)
	v.SetDefault("output.matlab", true)
	v.SetDefault("output.png", true)
	v.SetDefault("output.json", true)
}

// ReadAppConfig reads config.{yaml,json,toml} from indir, or the file given
// with -config, on top of the defaults. A missing default config file is
// not an error.
func ReadAppConfig(file, indir string) (AppConfig, antarray.Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("AFPATTERN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(indir)
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return AppConfig{}, antarray.Config{}, errors.Wrap(err, "reading config")
		}
		log.WithField("dir", indir).Info("no config file found, using defaults")
	} else {
		log.WithField("file", v.ConfigFileUsed()).Info("config loaded")
	}

	if err := setupLogging(v.GetString("log.level"), v.GetBool("log.json")); err != nil {
		return AppConfig{}, antarray.Config{}, err
	}

	app := AppConfig{
		Name:    v.GetString("output.name"),
		FloorDb: v.GetFloat64("output.floor"),
		Matlab:  v.GetBool("output.matlab"),
		PNG:     v.GetBool("output.png"),
		JSON:    v.GetBool("output.json"),
	}
	cfg, err := antarray.DecodeConfig(v.AllSettings())
	if err != nil {
		return app, cfg, err
	}
	log.WithFields(log.Fields{"type": cfg.Type, "element": cfg.Element.Kind}).Debug("array config")
	return app, cfg, nil
}

func setupLogging(level string, json bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log.level")
	}
	if verbose && lvl < log.DebugLevel {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)
	if json {
		log.SetFormatter(&log.JSONFormatter{})
	}
	log.SetOutput(os.Stderr)
	return nil
}
