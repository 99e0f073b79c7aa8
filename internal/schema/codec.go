// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// CodecOptions describe how messages of the loaded schema are represented
// as JSON and where schema imports are searched.
type CodecOptions struct {
	// KeepCase keeps field names exactly as declared in the schema.
	KeepCase bool
	// LongsAsStrings represents 64-bit integers as JSON strings.
	LongsAsStrings bool
	// EnumsAsNames represents enum values by their symbolic name.
	EnumsAsNames bool
	// Defaults populates absent fields with their default values.
	Defaults bool
	// Oneofs supports one-of grouped fields.
	Oneofs bool
	// IncludeDirs are searched, in order, for imported schema files.
	IncludeDirs []string
}

// DefaultCodecOptions returns the fixed codec settings used by the service.
func DefaultCodecOptions(includeDirs ...string) CodecOptions {
	return CodecOptions{
		KeepCase:       true,
		LongsAsStrings: true,
		EnumsAsNames:   true,
		Defaults:       true,
		Oneofs:         true,
		IncludeDirs:    includeDirs,
	}
}

// validate rejects settings protojson always applies and cannot turn off.
func (o CodecOptions) validate() error {
	if !o.LongsAsStrings {
		return fmt.Errorf("%w: 64-bit integers are always encoded as strings", ErrUnsupportedCodecOption)
	}
	if !o.Oneofs {
		return fmt.Errorf("%w: one-of fields are always supported", ErrUnsupportedCodecOption)
	}

	return nil
}

// MarshalOptions returns the protojson settings for encoding responses.
func (o CodecOptions) MarshalOptions(types *protoregistry.Types) protojson.MarshalOptions {
	return protojson.MarshalOptions{
		UseProtoNames:   o.KeepCase,
		UseEnumNumbers:  !o.EnumsAsNames,
		EmitUnpopulated: o.Defaults,
		Resolver:        types,
	}
}

// UnmarshalOptions returns the protojson settings for decoding requests.
func (o CodecOptions) UnmarshalOptions(types *protoregistry.Types) protojson.UnmarshalOptions {
	return protojson.UnmarshalOptions{
		DiscardUnknown: true,
		Resolver:       types,
	}
}
