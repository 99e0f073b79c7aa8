// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"errors"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/MKhiriev/go-offering-publisher/internal/schema"
)

// descriptorResolver answers from the schema first and falls back to the
// compiled-in registry, which holds the health and reflection descriptors.
type descriptorResolver []protodesc.Resolver

func newDescriptorResolver(s *schema.Schema) descriptorResolver {
	return descriptorResolver{s.Files(), protoregistry.GlobalFiles}
}

func (r descriptorResolver) FindFileByPath(path string) (protoreflect.FileDescriptor, error) {
	for _, res := range r {
		fd, err := res.FindFileByPath(path)
		if err == nil {
			return fd, nil
		}
		if !errors.Is(err, protoregistry.NotFound) {
			return nil, err
		}
	}

	return nil, protoregistry.NotFound
}

func (r descriptorResolver) FindDescriptorByName(name protoreflect.FullName) (protoreflect.Descriptor, error) {
	for _, res := range r {
		d, err := res.FindDescriptorByName(name)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, protoregistry.NotFound) {
			return nil, err
		}
	}

	return nil, protoregistry.NotFound
}

// extensionResolver is the extension counterpart of descriptorResolver.
type extensionResolver []*protoregistry.Types

func newExtensionResolver(s *schema.Schema) extensionResolver {
	return extensionResolver{s.Types(), protoregistry.GlobalTypes}
}

func (r extensionResolver) FindExtensionByName(field protoreflect.FullName) (protoreflect.ExtensionType, error) {
	for _, types := range r {
		if xt, err := types.FindExtensionByName(field); err == nil {
			return xt, nil
		}
	}

	return nil, protoregistry.NotFound
}

func (r extensionResolver) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	for _, types := range r {
		if xt, err := types.FindExtensionByNumber(message, field); err == nil {
			return xt, nil
		}
	}

	return nil, protoregistry.NotFound
}

func (r extensionResolver) RangeExtensionsByMessage(message protoreflect.FullName, f func(protoreflect.ExtensionType) bool) {
	seen := make(map[protoreflect.FieldNumber]struct{})
	for _, types := range r {
		stop := false
		types.RangeExtensionsByMessage(message, func(xt protoreflect.ExtensionType) bool {
			num := xt.TypeDescriptor().Number()
			if _, ok := seen[num]; ok {
				return true
			}
			seen[num] = struct{}{}
			if !f(xt) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}
