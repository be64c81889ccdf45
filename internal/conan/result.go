// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package conan

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies why a search result could not be used.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindDecode
	KindFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindFormat:
		return "format"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ResultError is returned for a search result that could not be read,
// is not JSON, or does not have the shape conan 1.x writes.
type ResultError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ResultError) Error() string {
	switch e.Kind {
	case KindFormat:
		return "unexpected JSON format (conan might have changed its output format): " + e.Msg
	case KindDecode:
		return "failed to decode search result: " + e.Msg
	default:
		if e.Err != nil {
			return "failed to read search result: " + e.Err.Error()
		}
		return "failed to read search result: " + e.Msg
	}
}

func (e *ResultError) Unwrap() error {
	return e.Err
}

func formatError(msg string) error {
	return &ResultError{Kind: KindFormat, Msg: msg}
}

// ParseRecipeIDs returns the id of every recipe in a `conan search --json`
// result, in the order conan listed them. An empty cache is reported by conan
// as an empty "results" array.
func ParseRecipeIDs(data []byte) ([]string, error) {
	items, err := resultItems(data, true)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		recipe := item.Get("recipe")
		if !recipe.IsObject() {
			return nil, formatError("'items' array is missing the 'recipe' object")
		}
		id := recipe.Get("id")
		if id.Type != gjson.String {
			return nil, formatError("'recipe' object is missing the 'id' string")
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}

// ParsePackageIDs returns the package ids of the single recipe a filtered
// `conan search --json <recipe>` result describes. Only the first item is
// looked at. A recipe without binaries has no "packages" key at all.
func ParsePackageIDs(data []byte) ([]string, error) {
	items, err := resultItems(data, false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || !items[0].IsObject() {
		return nil, formatError("'items' array has no objects")
	}

	packages := items[0].Get("packages")
	if !packages.Exists() {
		return []string{}, nil
	}
	if !packages.IsArray() {
		return nil, formatError("first 'items' object has no 'packages' array")
	}

	ids := []string{}
	for _, pkg := range packages.Array() {
		id := pkg.Get("id")
		if id.Type != gjson.String {
			return nil, formatError("'package' is missing an 'id' string")
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}

// resultItems walks results[0].items and returns its elements. With
// allowEmpty an empty "results" array yields no items instead of an error.
func resultItems(data []byte, allowEmpty bool) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ResultError{Kind: KindDecode, Msg: "not valid JSON"}
	}
	doc := gjson.ParseBytes(data)

	results := doc.Get("results")
	if !results.IsArray() {
		return nil, formatError("missing top-level 'results' array")
	}
	if allowEmpty && len(results.Array()) == 0 {
		return nil, nil
	}
	root := results.Get("0")
	if !root.IsObject() {
		return nil, formatError("'results' array is missing its root object")
	}
	items := root.Get("items")
	if !items.IsArray() {
		return nil, formatError("root object of 'results' array is missing the 'items' array")
	}
	return items.Array(), nil
}
