// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// parseDotEnv reads a dotenv config store file into a [Source] without
// touching the process environment.
func parseDotEnv(path string) (Source, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("error reading env file %s: %w", path, err)
	}

	return Source(values), nil
}
