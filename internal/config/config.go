package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	Key            string `yaml:"key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxInputChars  int    `yaml:"max_input_chars"`
}

type EmbeddingConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type StoreConfig struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	DSN        string `yaml:"dsn"`
	Password   string `yaml:"password"`
	Debug      bool   `yaml:"debug"`
}

type ScrapeConfig struct {
	ContentSelector string `yaml:"content_selector"`
	NextLinkText    string `yaml:"next_link_text"`
	TitleTrimSuffix string `yaml:"title_trim_suffix"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

type RenderConfig struct {
	FontPath string `yaml:"font_path"`
	Language string `yaml:"language"`
}

type PathsConfig struct {
	ChaptersDir  string `yaml:"chapters_dir"`
	StaticDir    string `yaml:"static_dir"`
	FeedbackFile string `yaml:"feedback_file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Store     StoreConfig     `yaml:"store"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Render    RenderConfig    `yaml:"render"`
	Paths     PathsConfig     `yaml:"paths"`
	Server    ServerConfig    `yaml:"server"`
}

// LoadConfig reads the YAML config file. ${VAR} references are expanded from
// the environment so API keys and DSNs can stay out of the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 90
	}
	if c.LLM.MaxInputChars == 0 {
		c.LLM.MaxInputChars = 8000
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "ollama"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "chromem"
	}
	if c.Store.Path == "" {
		c.Store.Path = "./chromemdb"
	}
	if c.Store.Collection == "" {
		c.Store.Collection = "chapters"
	}
	if c.Scrape.ContentSelector == "" {
		c.Scrape.ContentSelector = "div#mw-content-text"
	}
	if c.Scrape.NextLinkText == "" {
		c.Scrape.NextLinkText = "→"
	}
	if c.Scrape.TitleTrimSuffix == "" {
		c.Scrape.TitleTrimSuffix = " - Wikisource, the free online library"
	}
	if c.Scrape.TimeoutSeconds == 0 {
		c.Scrape.TimeoutSeconds = 60
	}
	if c.Render.Language == "" {
		c.Render.Language = "en"
	}
	if c.Paths.ChaptersDir == "" {
		c.Paths.ChaptersDir = "chapters"
	}
	if c.Paths.StaticDir == "" {
		c.Paths.StaticDir = "static"
	}
	if c.Paths.FeedbackFile == "" {
		c.Paths.FeedbackFile = "feedback/feedback_log.json"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
}
