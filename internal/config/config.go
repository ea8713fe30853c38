package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// VectorsConfig locates the pretrained word-vector file whose token table is
// used for encoding.
type VectorsConfig struct {
	Path        string `yaml:"path"`
	URL         string `yaml:"url"`
	Download    bool   `yaml:"download"`
	PadToken    string `yaml:"pad_token"`
	UnkToken    string `yaml:"unk_token"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries"`
}

// VocabularyConfig configures the vocabulary built from the corpus itself.
type VocabularyConfig struct {
	MinFreq int `yaml:"min_freq"`
}

// EncoderConfig configures sequence encoding.
type EncoderConfig struct {
	// Vocabulary selects the lookup used for encoding: "vectors" or "corpus".
	Vocabulary string `yaml:"vocabulary"`
	// MaxLen overrides the per-dataset length when positive.
	MaxLen           int  `yaml:"max_len"`
	FilterDegenerate bool `yaml:"filter_degenerate"`
}

// FinetuneConfig configures the stratified split of the train pool.
type FinetuneConfig struct {
	Enabled bool    `yaml:"enabled"`
	Ratio   float64 `yaml:"ratio"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset         string           `yaml:"dataset"`
	DataDir         string           `yaml:"data_dir"`
	StrictPartition bool             `yaml:"strict_partition"`
	Vectors         VectorsConfig    `yaml:"vectors"`
	Vocabulary      VocabularyConfig `yaml:"vocabulary"`
	Encoder         EncoderConfig    `yaml:"encoder"`
	Finetune        FinetuneConfig   `yaml:"finetune"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/metaprep/config.yaml.
// If neither exists, it writes defaults to ~/.config/metaprep/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DataPath is the JSON-lines file for the configured dataset.
func (c *AppConfig) DataPath() string {
	return filepath.Join(c.DataDir, c.Dataset+".json")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "metaprep", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Dataset: "huffpost",
		DataDir: "data/text-data",
		Vectors: VectorsConfig{
			Path:        "wiki.en.vec",
			URL:         "https://dl.fbaipublicfiles.com/fasttext/vectors-wiki/wiki.en.vec",
			PadToken:    "<pad>",
			UnkToken:    "<unk>",
			TimeoutSecs: 3600,
			MaxRetries:  3,
		},
		Vocabulary: VocabularyConfig{MinFreq: 5},
		Encoder:    EncoderConfig{Vocabulary: "vectors"},
		Finetune:   FinetuneConfig{Ratio: 0.8},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Dataset == "" {
		cfg.Dataset = def.Dataset
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.Vectors.Path == "" {
		cfg.Vectors.Path = def.Vectors.Path
	}
	if cfg.Vectors.PadToken == "" {
		cfg.Vectors.PadToken = def.Vectors.PadToken
	}
	if cfg.Vectors.UnkToken == "" {
		cfg.Vectors.UnkToken = def.Vectors.UnkToken
	}
	if cfg.Vectors.TimeoutSecs == 0 {
		cfg.Vectors.TimeoutSecs = def.Vectors.TimeoutSecs
	}
	if cfg.Vocabulary.MinFreq == 0 {
		cfg.Vocabulary.MinFreq = def.Vocabulary.MinFreq
	}
	if cfg.Encoder.Vocabulary == "" {
		cfg.Encoder.Vocabulary = def.Encoder.Vocabulary
	}
	if cfg.Finetune.Ratio == 0 {
		cfg.Finetune.Ratio = def.Finetune.Ratio
	}
}

// applyEnv lets METAPREP_DATA_DIR and METAPREP_VECTORS override file paths.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("METAPREP_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("METAPREP_VECTORS"); v != "" {
		cfg.Vectors.Path = v
	}
}
