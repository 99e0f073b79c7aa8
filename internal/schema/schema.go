// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bufbuild/protocompile"
	_ "google.golang.org/genproto/googleapis/api/annotations" // registers google/api/*.proto for imports
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Schema is a compiled interface definition restricted to one package.
type Schema struct {
	path    string
	pkg     protoreflect.FullName
	codec   CodecOptions
	files   *protoregistry.Files
	types   *protoregistry.Types
	service []protoreflect.ServiceDescriptor
}

// Load compiles the schema file at path together with its imports and
// selects the services declared in pkg.
//
// Imports are resolved from the schema directory, then codec.IncludeDirs,
// then the standard google/protobuf files, then any file registered in the
// Go protobuf registry (google/api annotations among them). The schema is
// either loaded completely or not at all.
func Load(ctx context.Context, path, pkg string, codec CodecOptions) (*Schema, error) {
	if err := codec.validate(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving schema path %s: %w", path, err)
	}

	importPaths := append([]string{filepath.Dir(absPath)}, codec.IncludeDirs...)
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(protocompile.CompositeResolver{
			&protocompile.SourceResolver{ImportPaths: importPaths},
			protocompile.ResolverFunc(findRegisteredFile),
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}

	compiled, err := compiler.Compile(ctx, filepath.Base(absPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, absPath, err)
	}

	files := new(protoregistry.Files)
	for _, fd := range compiled {
		if err := registerFile(files, fd); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCompile, absPath, err)
		}
	}

	types, err := buildTypes(files)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, absPath, err)
	}

	s := &Schema{
		path:  absPath,
		pkg:   protoreflect.FullName(pkg),
		codec: codec,
		files: files,
		types: types,
	}

	found := false
	files.RangeFilesByPackage(s.pkg, func(fd protoreflect.FileDescriptor) bool {
		found = true
		services := fd.Services()
		for i := range services.Len() {
			s.service = append(s.service, services.Get(i))
		}
		return true
	})
	if !found {
		return nil, fmt.Errorf("%w: %q in %s", ErrPackageNotFound, pkg, absPath)
	}

	slices.SortFunc(s.service, func(a, b protoreflect.ServiceDescriptor) int {
		return compareNames(a.FullName(), b.FullName())
	})

	return s, nil
}

func compareNames(a, b protoreflect.FullName) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func findRegisteredFile(path string) (protocompile.SearchResult, error) {
	fd, err := protoregistry.GlobalFiles.FindFileByPath(path)
	if err != nil {
		return protocompile.SearchResult{}, err
	}

	return protocompile.SearchResult{Desc: fd}, nil
}

// registerFile adds fd and its transitive imports to files.
func registerFile(files *protoregistry.Files, fd protoreflect.FileDescriptor) error {
	if _, err := files.FindFileByPath(fd.Path()); err == nil {
		return nil
	}

	imports := fd.Imports()
	for i := range imports.Len() {
		if err := registerFile(files, imports.Get(i).FileDescriptor); err != nil {
			return err
		}
	}

	return files.RegisterFile(fd)
}

// buildTypes registers dynamic message, enum and extension types for every
// descriptor in files so that JSON encoding can resolve Any payloads.
func buildTypes(files *protoregistry.Files) (*protoregistry.Types, error) {
	types := new(protoregistry.Types)

	var err error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		err = registerTypes(types, fd.Messages(), fd.Enums(), fd.Extensions())
		return err == nil
	})

	return types, err
}

func registerTypes(
	types *protoregistry.Types,
	messages protoreflect.MessageDescriptors,
	enums protoreflect.EnumDescriptors,
	extensions protoreflect.ExtensionDescriptors,
) error {
	for i := range enums.Len() {
		if err := types.RegisterEnum(dynamicpb.NewEnumType(enums.Get(i))); err != nil {
			return err
		}
	}

	for i := range extensions.Len() {
		if err := types.RegisterExtension(dynamicpb.NewExtensionType(extensions.Get(i))); err != nil {
			return err
		}
	}

	for i := range messages.Len() {
		md := messages.Get(i)
		if md.IsMapEntry() {
			continue
		}
		if err := types.RegisterMessage(dynamicpb.NewMessageType(md)); err != nil {
			return err
		}
		if err := registerTypes(types, md.Messages(), md.Enums(), md.Extensions()); err != nil {
			return err
		}
	}

	return nil
}

// Path returns the absolute path the schema was compiled from.
func (s *Schema) Path() string {
	return s.path
}

// Package returns the exposed protobuf package.
func (s *Schema) Package() protoreflect.FullName {
	return s.pkg
}

// Codec returns the codec options the schema was loaded with.
func (s *Schema) Codec() CodecOptions {
	return s.codec
}

// Files returns the registry holding the schema and its imports.
func (s *Schema) Files() *protoregistry.Files {
	return s.files
}

// Types returns dynamic types for every message, enum and extension.
func (s *Schema) Types() *protoregistry.Types {
	return s.types
}

// Services returns the services of the exposed package sorted by name.
func (s *Schema) Services() []protoreflect.ServiceDescriptor {
	return slices.Clone(s.service)
}

// FindMethod looks up a method of a service of the exposed package. service
// may be a fully-qualified name or a name relative to the package.
func (s *Schema) FindMethod(service, method string) (protoreflect.MethodDescriptor, error) {
	for _, sd := range s.service {
		if string(sd.FullName()) != service && string(sd.Name()) != service {
			continue
		}
		if md := sd.Methods().ByName(protoreflect.Name(method)); md != nil {
			return md, nil
		}
		break
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrMethodNotFound, service, method)
}

// FullMethodName returns the gRPC method path, e.g. "/pkg.Service/Method".
func FullMethodName(md protoreflect.MethodDescriptor) string {
	return fmt.Sprintf("/%s/%s", md.Parent().FullName(), md.Name())
}
