package app

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Configuration file formats.
const (
	FormatAuto = "auto"
	FormatHCL  = "hcl"
	FormatYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string `validate:"dive,required"`
	Format      string   `validate:"oneof=auto hcl yaml"`
	Output      string   `validate:"oneof=text json hcl"`

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	ListenAddr string `validate:"omitempty,listen_addr"`
	CacheSize  int    `validate:"gte=0"`

	Watch    bool
	Debounce time.Duration `validate:"gte=0"`

	RemoteURL     string        `validate:"omitempty,url"`
	RemoteTimeout time.Duration `validate:"gte=0"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("listen_addr", validateListenAddr)
}

// validateListenAddr accepts an optional host (IPv6 in brackets) and a
// numeric port from 0 to 65535; port 0 lets the system pick one.
func validateListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil || port == "" {
		return false
	}
	_, err = strconv.ParseUint(port, 10, 16)
	return err == nil
}

// NewConfig fills in defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := configValidate.Struct(cfg); err != nil {
		return nil, describeValidation(err)
	}
	return &cfg, nil
}

// describeValidation turns validator errors into one line per field.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, fmt.Errorf("invalid %s %v: must satisfy %q", fe.Field(), fe.Value(), rule))
	}
	return errors.Join(errs...)
}
