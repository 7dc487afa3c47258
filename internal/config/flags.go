package config

import (
	"errors"
	"flag"
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

// ParseFlags parses all configuration flags from the process command line.
// Positional arguments (client subcommands) stay available via flag.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "720h")
//	-request-timeout server request timeout (e.g., "30s", "1m")
//	-max-upload-size maximum snapshot size in bytes
//	-project project id
//	-secret project secret
//	-token bearer token used on push
//	-remote remote history address (http://, https:// or file://)
//	-remote-timeout remote request timeout
//	-sync-interval background sync period
//	-settle-delay pause between fetch and merge
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var maxUploadSize int64
	var projectID string
	var projectSecret string
	var token string
	var remote string
	var remoteTimeout time.Duration
	var syncInterval time.Duration
	var settleDelay time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 720h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.Int64Var(&maxUploadSize, "max-upload-size", 0, "Maximum snapshot size in bytes")
	flag.StringVar(&projectID, "project", "", "Project id")
	flag.StringVar(&projectSecret, "secret", "", "Project secret")
	flag.StringVar(&token, "token", "", "Bearer token used on push")
	flag.StringVar(&remote, "remote", "", "Remote history address")
	flag.DurationVar(&remoteTimeout, "remote-timeout", 0, "Remote request timeout")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	flag.DurationVar(&settleDelay, "settle-delay", 0, "Pause between fetch and merge")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			ProjectID:     projectID,
			ProjectSecret: projectSecret,
			Token:         token,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxUploadSize:  maxUploadSize,
		},
		Adapter: Adapter{
			Address:        remote,
			RequestTimeout: remoteTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			SettleDelay:  settleDelay,
		},
		JSONFilePath: jsonConfigPath,
	}
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
