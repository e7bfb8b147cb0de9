package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses configuration flags from args (typically os.Args[1:], or
// the arguments following a subcommand).
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d server database DSN
//	-driver server database driver (pgx, sqlite3)
//	-r remote backend base URL
//	-local-backend local store substrate (memory, file, sqlite)
//	-local-path local store file path
//	-sync-interval reconciliation interval (e.g., "30s", "5m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("localtodo", flag.ContinueOnError)

	var serverAddress string
	var databaseDSN string
	var databaseDriver string
	var remoteBaseURL string
	var localBackend string
	var localPath string
	var syncInterval time.Duration
	var requestTimeout time.Duration
	var jsonConfigPath string

	fs.StringVar(&serverAddress, "a", "", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&remoteBaseURL, "r", "", "Remote backend base URL")
	fs.StringVar(&localBackend, "local-backend", "", "Local store backend (memory, file, sqlite)")
	fs.StringVar(&localPath, "local-path", "", "Local store file path")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 30s, 5m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Local: Local{
				Backend: localBackend,
				Path:    localPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Remote: Remote{
			BaseURL:        remoteBaseURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
