// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the offering publisher process.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win over later ones):
//  1. Command-line flags that were explicitly set
//  2. Environment variables
//  3. JSON config store file
//  4. Dotenv config store file
//  5. Defaults declared on struct tags
//
// Flags and environment variables form the process override layer, the two
// files form the config store. [Resolver] answers single-key lookups over
// these layers; [GetStructuredConfig] decodes the merged snapshot into a
// typed [StructuredConfig].
package config
