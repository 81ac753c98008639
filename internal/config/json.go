package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// [Duration] fields so lifetimes can be written as "15m" in the file.
type StructuredJSONConfig struct {
	App struct {
		Name     string `json:"name"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		AccessTokenSignKey  string   `json:"access_token_sign_key"`
		RefreshTokenSignKey string   `json:"refresh_token_sign_key"`
		TokenIssuer         string   `json:"token_issuer"`
		AccessTokenTTL      Duration `json:"access_token_ttl"`
		RefreshTokenTTL     Duration `json:"refresh_token_ttl"`
	} `json:"auth,omitempty"`

	Security struct {
		HashCost               int `json:"hash_cost"`
		RateLimitWindowSeconds int `json:"rate_limit_window_seconds"`
		RateLimitMaxAttempts   int `json:"rate_limit_max_attempts"`
	} `json:"security,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		LastLoginWorkers   int      `json:"last_login_workers"`
		LastLoginQueueSize int      `json:"last_login_queue_size"`
		LastLoginTimeout   Duration `json:"last_login_timeout"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:     jsonCfg.App.Name,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			AccessTokenSignKey:  jsonCfg.Auth.AccessTokenSignKey,
			RefreshTokenSignKey: jsonCfg.Auth.RefreshTokenSignKey,
			TokenIssuer:         jsonCfg.Auth.TokenIssuer,
			AccessTokenTTL:      time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL:     time.Duration(jsonCfg.Auth.RefreshTokenTTL),
		},
		Security: Security{
			HashCost:               jsonCfg.Security.HashCost,
			RateLimitWindowSeconds: jsonCfg.Security.RateLimitWindowSeconds,
			RateLimitMaxAttempts:   jsonCfg.Security.RateLimitMaxAttempts,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			LastLoginWorkers:   jsonCfg.Workers.LastLoginWorkers,
			LastLoginQueueSize: jsonCfg.Workers.LastLoginQueueSize,
			LastLoginTimeout:   time.Duration(jsonCfg.Workers.LastLoginTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
