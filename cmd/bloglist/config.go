package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rogpeppe/rjson"
)

type config struct {
	Addr            string   `json:"addr"`
	BaseURL         string   `json:"base_url"`
	Store           string   `json:"store"`
	MongoURI        string   `json:"mongo_uri"`
	MongoDatabase   string   `json:"mongo_database"`
	MongoCollection string   `json:"mongo_collection"`
	BoltPath        string   `json:"bolt_path"`
	RequestTimeout  string   `json:"request_timeout"`
	ShutdownTimeout string   `json:"shutdown_timeout"`
	CORSOrigins     []string `json:"cors_origins"`
	RateLimit       float64  `json:"rate_limit"`
	RateBurst       int      `json:"rate_burst"`
	MaxBodyBytes    int64    `json:"max_body_bytes"`
	LogLevel        string   `json:"log_level"`
	LogFormat       string   `json:"log_format"`
	Debug           bool     `json:"debug"`

	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	logLevel        slog.Level
}

const (
	storeMongo  = "mongo"
	storeBolt   = "bolt"
	storeMemory = "memory"

	defaultShutdownTimeout = 15 * time.Second
)

func defaultConfig() *config {
	return &config{
		Addr:            ":3003",
		Store:           storeMongo,
		MongoDatabase:   "bloglist",
		BoltPath:        "bloglist.db",
		RequestTimeout:  "10s",
		ShutdownTimeout: "15s",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// loadConfig layers an optional rjson file and the environment over the
// defaults. An empty pathname skips the file.
func loadConfig(pathname string, getenv func(string) string) (*config, error) {
	c := defaultConfig()
	if pathname != "" {
		f, err := os.Open(pathname)
		if err != nil {
			return nil, err
		}
		err = rjson.NewDecoder(f).Decode(c)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pathname, err)
		}
	}
	c.applyEnv(getenv)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *config) applyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if uri := getenv("MONGODB_URI"); uri != "" {
		c.MongoURI = uri
	}
	if store := getenv("BLOGLIST_STORE"); store != "" {
		c.Store = store
	}
	if level := getenv("BLOGLIST_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

func (c *config) validate() error {
	var errs []error

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case storeMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("mongo_uri is required for the mongo store"))
		}
		if c.MongoDatabase == "" {
			errs = append(errs, errors.New("mongo_database is required for the mongo store"))
		}
	case storeBolt:
		if c.BoltPath == "" {
			errs = append(errs, errors.New("bolt_path is required for the bolt store"))
		}
	case storeMemory:
	default:
		errs = append(errs, fmt.Errorf("store %q: want mongo, bolt or memory", c.Store))
	}

	var err error
	if c.requestTimeout, err = parseDuration("request_timeout", c.RequestTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.shutdownTimeout, err = parseDuration("shutdown_timeout", c.ShutdownTimeout); err != nil {
		errs = append(errs, err)
	} else if c.shutdownTimeout == 0 {
		c.shutdownTimeout = defaultShutdownTimeout
	}
	if err := c.logLevel.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: want json or text", c.LogFormat))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate_limit must not be negative"))
	}

	return errors.Join(errs...)
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}
