package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	Source   SourceConfig
	Datasets DatasetsConfig
	Session  SessionConfig
}

// SourceConfig selects where spreadsheets come from.
// Kind: drive | gcs | local.
type SourceConfig struct {
	Kind            string
	CredentialsFile string
	CredentialsJSON string
	LocalDir        string
	CacheTTL        time.Duration
	CacheSize       int
}

// DatasetsConfig identifies the similarity database and the SJ history.
// An empty sheet means "first sheet".
type DatasetsConfig struct {
	DBFileID string
	DBSheet  string
	SJFileID string
	SJSheet  string
}

type SessionConfig struct {
	TTL         time.Duration
	MaxSessions int
}

// Load reads defaults, an optional config file (PRICECHECK_CONFIG) and env overrides
// with prefix PRICECHECK_ (e.g. PRICECHECK_DATASETS_DBFILEID).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("alloworigins", "*")
	v.SetDefault("loglevel", "info")
	v.SetDefault("maxuploadmb", 16)
	v.SetDefault("logfile", "logs/pricecheck-service.log")

	v.SetDefault("source.kind", "drive")
	v.SetDefault("source.credentialsfile", "")
	v.SetDefault("source.credentialsjson", "")
	v.SetDefault("source.localdir", "data")
	v.SetDefault("source.cachettl", time.Hour)
	v.SetDefault("source.cachesize", 32)

	v.SetDefault("datasets.dbfileid", "1_CXkB0wkdj3MC7YdewWdYDxns4iplsXF")
	v.SetDefault("datasets.dbsheet", "")
	v.SetDefault("datasets.sjfileid", "1NcsaPVBVqlg6fcKHS2XYxkzyPNGiAaYc")
	v.SetDefault("datasets.sjsheet", "")

	v.SetDefault("session.ttl", 2*time.Hour)
	v.SetDefault("session.maxsessions", 1024)

	if path := os.Getenv("PRICECHECK_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("PRICECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Host:         v.GetString("host"),
		Port:         v.GetInt("port"),
		AllowOrigins: splitList(v.GetString("alloworigins")),
		LogLevel:     v.GetString("loglevel"),
		MaxUploadMB:  v.GetInt("maxuploadmb"),
		LogFile:      v.GetString("logfile"),
		Source: SourceConfig{
			Kind:            strings.ToLower(v.GetString("source.kind")),
			CredentialsFile: v.GetString("source.credentialsfile"),
			CredentialsJSON: v.GetString("source.credentialsjson"),
			LocalDir:        v.GetString("source.localdir"),
			CacheTTL:        v.GetDuration("source.cachettl"),
			CacheSize:       v.GetInt("source.cachesize"),
		},
		Datasets: DatasetsConfig{
			DBFileID: v.GetString("datasets.dbfileid"),
			DBSheet:  v.GetString("datasets.dbsheet"),
			SJFileID: v.GetString("datasets.sjfileid"),
			SJSheet:  v.GetString("datasets.sjsheet"),
		},
		Session: SessionConfig{
			TTL:         v.GetDuration("session.ttl"),
			MaxSessions: v.GetInt("session.maxsessions"),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c Config) validate() error {
	switch c.Source.Kind {
	case "drive", "gcs", "local":
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.Datasets.DBFileID == "" || c.Datasets.SJFileID == "" {
		return fmt.Errorf("dataset ids must not be empty")
	}
	if c.Source.CacheTTL <= 0 {
		return fmt.Errorf("source cache ttl must be positive, got %s", c.Source.CacheTTL)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
