package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/y-arjun-y/caish-website/internal/customheaders"
)

var (
	errRootNotDirectory     = errors.New("root is not a directory")
	errEmptyListenAddress   = errors.New("listen-http contains an empty address")
	errMaxConnsNegative     = errors.New("max-conns must be greater than or equal to 0")
	errMaxURILengthNegative = errors.New("max-uri-length must be greater than or equal to 0")
	errStatusPathNotRooted  = errors.New("status-path must start with /")
)

func validateConfig(config *Config) error {
	var result *multierror.Error

	result = multierror.Append(result,
		validateRootDir(config),
		validateListenAddresses(config),
		validateLimits(config),
		validateStatusPath(config),
		validateCustomHeaders(config),
	)

	return result.ErrorOrNil()
}

func validateRootDir(config *Config) error {
	fi, err := os.Stat(config.General.RootDir)
	if err != nil {
		return fmt.Errorf("checking root directory: %w", err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: %q", errRootNotDirectory, config.General.RootDir)
	}

	return nil
}

func validateListenAddresses(config *Config) error {
	for _, addr := range config.ListenHTTPStrings.Split() {
		if strings.TrimSpace(addr) == "" {
			return errEmptyListenAddress
		}
	}

	return nil
}

func validateLimits(config *Config) error {
	var result *multierror.Error

	if config.General.MaxConns < 0 {
		result = multierror.Append(result, errMaxConnsNegative)
	}

	if config.General.MaxURILength < 0 {
		result = multierror.Append(result, errMaxURILengthNegative)
	}

	return result.ErrorOrNil()
}

func validateStatusPath(config *Config) error {
	statusPath := config.General.StatusPath
	if statusPath != "" && !strings.HasPrefix(statusPath, "/") {
		return fmt.Errorf("%w: %q", errStatusPathNotRooted, statusPath)
	}

	return nil
}

func validateCustomHeaders(config *Config) error {
	_, err := customheaders.ParseHeaderString(config.General.CustomHeaders)

	return err
}
