package main

import (
	"fmt"
	"os"
	"strings"

	k8syaml "sigs.k8s.io/yaml"
)

// readJSONOrYAML reads path and, if its extension marks it as YAML,
// converts it to JSON via sigs.k8s.io/yaml so every downstream consumer
// (value.Parse, patch.ParsePatch) only ever has to understand JSON bytes.
// A bare JSON string passed on the command line, rather than a file
// path, is accepted unchanged.
func readJSONOrYAML(pathOrInline string) ([]byte, error) {
	info, err := os.Stat(pathOrInline)
	if err != nil || info.IsDir() {
		return []byte(pathOrInline), nil
	}

	data, err := os.ReadFile(pathOrInline)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", pathOrInline, err)
	}
	if isYAMLPath(pathOrInline) {
		jsonBytes, err := k8syaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("convert %q from YAML: %w", pathOrInline, err)
		}
		return jsonBytes, nil
	}
	return data, nil
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
