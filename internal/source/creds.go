package source

import (
	"os"
	"strings"

	"google.golang.org/api/option"

	"pricecheck-service/internal/config"
)

// ClientOptions resolves service-account credentials from config, then from the
// GOOGLE_APPLICATION_CREDENTIALS(_JSON) environment. No options means application default credentials.
func ClientOptions(cfg config.SourceConfig) []option.ClientOption {
	creds := strings.TrimSpace(cfg.CredentialsJSON)
	if creds == "" {
		creds = strings.TrimSpace(cfg.CredentialsFile)
	}
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	}
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
