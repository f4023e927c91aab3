// Copyright 2026 mldata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const EnvPrefix = "MLDATA"

// Config is the configuration of data asset resolution and logging.
type Config struct {
	// DataDir is the root under which every data set family gets a directory.
	DataDir  string         `mapstructure:"data_dir" validate:"required"`
	Download DownloadConfig `mapstructure:"download"`
	Log      LogConfig      `mapstructure:"log"`
}

type DownloadConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxTries  uint          `mapstructure:"max_tries" validate:"gte=1"`
	Progress  bool          `mapstructure:"progress"`
	UserAgent string        `mapstructure:"user_agent"`
}

type LogConfig struct {
	Debug      bool   `mapstructure:"debug"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=1"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// DefaultDataDir returns ~/.mldata/dataset, or a temporary directory when the
// home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mldata", "dataset")
	}
	return filepath.Join(home, ".mldata", "dataset")
}

func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Download: DownloadConfig{
			Timeout:   10 * time.Minute,
			MaxTries:  3,
			Progress:  true,
			UserAgent: "mldata",
		},
		Log: LogConfig{
			MaxSize: 100,
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := Default()
	v.SetDefault("data_dir", defaultConfig.DataDir)
	v.SetDefault("download.timeout", defaultConfig.Download.Timeout)
	v.SetDefault("download.max_tries", defaultConfig.Download.MaxTries)
	v.SetDefault("download.progress", defaultConfig.Download.Progress)
	v.SetDefault("download.user_agent", defaultConfig.Download.UserAgent)
	v.SetDefault("log.debug", defaultConfig.Log.Debug)
	v.SetDefault("log.path", defaultConfig.Log.Path)
	v.SetDefault("log.max_size", defaultConfig.Log.MaxSize)
	v.SetDefault("log.max_age", defaultConfig.Log.MaxAge)
	v.SetDefault("log.max_backups", defaultConfig.Log.MaxBackups)
}

// LoadConfig reads a TOML, YAML or JSON file (chosen by extension) on top of
// the defaults. An empty path loads the defaults only. Environment variables
// such as MLDATA_DATA_DIR or MLDATA_DOWNLOAD_MAX_TRIES take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return nil, errors.Trace(err)
	}
	conf.DataDir = expandHome(conf.DataDir)
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks every field and reports all violations at once.
func (config *Config) Validate() error {
	validate := validator.New()
	english := en.New()
	universal := ut.New(english, english)
	translator, _ := universal.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return errors.Trace(err)
	}
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("mapstructure")
	})
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := lo.Map(validationErrors, func(e validator.FieldError, _ int) string {
			return e.Namespace() + ": " + e.Translate(translator)
		})
		return errors.NotValidf("config (%s)", strings.Join(messages, "; "))
	}
	return errors.Trace(err)
}
