package env

import (
	"fmt"
	"os"
	"slot_engine/internal/config"
	"time"
)

const (
	httpAddressEnvName      = "HTTP_ADDRESS"
	httpReadTimeoutEnvName  = "HTTP_READ_TIMEOUT"
	httpWriteTimeoutEnvName = "HTTP_WRITE_TIMEOUT"

	defaultHTTPAddress = ":8080"
	defaultHTTPTimeout = 15 * time.Second
)

type httpConfig struct {
	address      string
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	address := os.Getenv(httpAddressEnvName)
	if len(address) == 0 {
		address = defaultHTTPAddress
	}

	readTimeout, err := durationOrDefault(httpReadTimeoutEnvName, defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := durationOrDefault(httpWriteTimeoutEnvName, defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	return &httpConfig{
		address:      address,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}, nil
}

func (h *httpConfig) Address() string {
	return h.address
}

func (h *httpConfig) ReadTimeout() time.Duration {
	return h.readTimeout
}

func (h *httpConfig) WriteTimeout() time.Duration {
	return h.writeTimeout
}

// durationOrDefault пустая переменная - значение по умолчанию
func durationOrDefault(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
