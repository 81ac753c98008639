package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line flags from args (normally os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-redis redis address in format [host]:[port]
//	-c/-config json file path with configs
//	-access-token-key access token signing key
//	-refresh-token-key refresh token signing key
//	-token-issuer token issuer name
//	-access-token-ttl access token lifetime (e.g. "15m")
//	-refresh-token-ttl refresh token lifetime (e.g. "168h")
//	-hash-cost bcrypt cost factor
//	-rate-limit-window gate window in seconds
//	-rate-limit-attempts gate attempts per window
//	-request-timeout request timeout (e.g. "30s")
//	-log-level zerolog level name
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress     NetAddress
		databaseDSN       string
		redisAddress      string
		jsonConfigPath    string
		accessKey         string
		refreshKey        string
		tokenIssuer       string
		accessTTL         time.Duration
		refreshTTL        time.Duration
		hashCost          int
		rateLimitWindow   int
		rateLimitAttempts int
		requestTimeout    time.Duration
		logLevel          string
	)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisAddress, "redis", "", "Redis address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&accessKey, "access-token-key", "", "Access token signing key")
	fs.StringVar(&refreshKey, "refresh-token-key", "", "Refresh token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTTL, "refresh-token-ttl", 0, "Refresh token lifetime (e.g., 168h)")
	fs.IntVar(&hashCost, "hash-cost", 0, "bcrypt cost factor")
	fs.IntVar(&rateLimitWindow, "rate-limit-window", 0, "Secure action gate window, seconds")
	fs.IntVar(&rateLimitAttempts, "rate-limit-attempts", 0, "Secure action gate attempts per window")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Auth: Auth{
			AccessTokenSignKey:  accessKey,
			RefreshTokenSignKey: refreshKey,
			TokenIssuer:         tokenIssuer,
			AccessTokenTTL:      accessTTL,
			RefreshTokenTTL:     refreshTTL,
		},
		Security: Security{
			HashCost:               hashCost,
			RateLimitWindowSeconds: rateLimitWindow,
			RateLimitMaxAttempts:   rateLimitAttempts,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Redis: Redis{Address: redisAddress},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in [1, 65535]")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
