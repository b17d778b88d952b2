package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/hanzideck/hanzideck/internal/dictionary/archchinese"
	"github.com/hanzideck/hanzideck/internal/dictionary/cedict"
	"github.com/hanzideck/hanzideck/internal/dictionary/forvo"
)

type Config struct {
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Caches       CachesConfig       `mapstructure:"caches"`
	Generator    GeneratorConfig    `mapstructure:"generator"`
}

type DictionariesConfig struct {
	Hanzi       HanziConfig       `mapstructure:"hanzi"`
	CEDICT      CEDICTConfig      `mapstructure:"cedict"`
	ArchChinese ArchChineseConfig `mapstructure:"archchinese"`
	Forvo       ForvoConfig       `mapstructure:"forvo"`
}

// HanziConfig points at a makemeahanzi style source directory holding
// dictionary.txt plus the svgs/ and svgs-still/ folders.
type HanziConfig struct {
	SourceDirectory string `mapstructure:"source_directory" validate:"omitempty,dir"`
}

type CEDICTConfig struct {
	File        string `mapstructure:"file"`
	DownloadURL string `mapstructure:"download_url" validate:"omitempty,url"`
}

type ArchChineseConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type ForvoConfig struct {
	BaseURL      string `mapstructure:"base_url" validate:"omitempty,url"`
	AudioBaseURL string `mapstructure:"audio_base_url" validate:"omitempty,url"`
}

type CachesConfig struct {
	Directory string `mapstructure:"directory"`
}

type GeneratorConfig struct {
	StagingDirectory string `mapstructure:"staging_directory"`
	LibsDirectory    string `mapstructure:"libs_directory"`
}

// WordCacheFile is where memoized online word searches live.
func (c CachesConfig) WordCacheFile() string {
	return filepath.Join(c.Directory, "archchinese-words.json")
}

// SentenceCacheFile is where memoized online sentence searches live.
func (c CachesConfig) SentenceCacheFile() string {
	return filepath.Join(c.Directory, "archchinese-sentences.json")
}

// AudioDirectory is where downloaded recordings are kept between runs.
func (c CachesConfig) AudioDirectory() string {
	return filepath.Join(c.Directory, "audio")
}

type ConfigLoader struct {
	configFile string
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &ConfigLoader{
		configFile: configFile,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if loader.configFile != "" {
		v.SetConfigFile(loader.configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hanzideck")
	}

	v.SetDefault("dictionaries.cedict.file", filepath.Join("dictionaries", "cedict_ts.u8"))
	v.SetDefault("dictionaries.cedict.download_url", cedict.DefaultDownloadURL)
	v.SetDefault("dictionaries.archchinese.base_url", archchinese.DefaultBaseURL)
	v.SetDefault("dictionaries.forvo.base_url", forvo.DefaultBaseURL)
	v.SetDefault("dictionaries.forvo.audio_base_url", forvo.DefaultAudioBaseURL)
	v.SetDefault("caches.directory", "cache")
	v.SetDefault("generator.staging_directory", "anki-deck-generator-temp")
	v.SetDefault("generator.libs_directory", "template-libs")

	if err := v.BindEnv("dictionaries.cedict.download_url", "CEDICT_DOWNLOAD_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind CEDICT_DOWNLOAD_URL environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.hanzi.source_directory", "HANZI_SOURCE_DIRECTORY"); err != nil {
		return nil, fmt.Errorf("failed to bind HANZI_SOURCE_DIRECTORY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
