// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// parseJSON reads a JSON config store file and flattens it into a [Source].
//
// Top-level keys are used as configuration keys. Nested objects are
// flattened by joining the upper-cased path with "_", so
// {"grpc": {"bind": "0.0.0.0:5002"}} provides GRPC_BIND. Arrays become comma
// separated lists and null values are treated as absent.
func parseJSON(jsonFilePath string) (Source, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var raw map[string]any
	decoder := json.NewDecoder(jsonFile)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	src := make(Source)
	for key, value := range raw {
		if err := flattenJSON(src, strings.ToUpper(key), value); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return src, nil
}

func flattenJSON(dst Source, key string, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, nested := range v {
			if err := flattenJSON(dst, key+"_"+strings.ToUpper(k), nested); err != nil {
				return err
			}
		}
		return nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return fmt.Errorf("key %s: %w", key, err)
			}
			items = append(items, s)
		}
		dst[key] = strings.Join(items, ",")
		return nil
	default:
		s, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		dst[key] = s
		return nil
	}
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", value)
	}
}
