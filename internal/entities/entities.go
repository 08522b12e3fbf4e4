// Package entities reads and writes entity mapping files so a redaction can
// be restored later, outside the session that produced it.
package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/types"
	"github.com/studiowebux/redactcli/internal/view"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrNotExist is returned when the entities file is missing
var ErrNotExist = errors.New("entities file does not exist")

// File is the on-disk layout of an entities file
type File struct {
	Entities []types.EntityMapping `json:"entities" yaml:"entities"`
}

// Save writes entities to a YAML file
func Save(path string, entities []types.EntityMapping) error {
	data, err := yaml.Marshal(File{Entities: nonNil(entities)})
	if err != nil {
		return fmt.Errorf("failed to encode entities: %w", err)
	}

	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write entities to %s: %w", path, err)
	}
	return nil
}

// Load reads entities from a YAML, JSON or JSON-with-comments file.
// Both the {entities: [...]} layout and a bare list are accepted.
// An empty list is valid.
func Load(path string) ([]types.EntityMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("failed to read entities file: %w", err)
	}

	var list []types.EntityMapping
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		list, err = parseJSON(data)
	default:
		list, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse entities file %s: %w", path, err)
	}
	return list, nil
}

func parseJSON(data []byte) ([]types.EntityMapping, error) {
	data = jsonc.ToJSON(data)

	var file File
	if err := json.Unmarshal(data, &file); err == nil {
		return nonNil(file.Entities), nil
	}

	var list []types.EntityMapping
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return nonNil(list), nil
}

func parseYAML(data []byte) ([]types.EntityMapping, error) {
	var list []types.EntityMapping
	if err := yaml.Unmarshal(data, &list); err == nil {
		return nonNil(list), nil
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return nonNil(file.Entities), nil
}

// Write prints one "key: v1, v2" line per mapping. Keys and values come
// from the service and are stripped of terminal escape sequences.
func Write(w io.Writer, entities []types.EntityMapping) {
	for _, e := range entities {
		values := make([]string, len(e.Values))
		for i, v := range e.Values {
			values[i] = view.Sanitize(v)
		}
		fmt.Fprintf(w, "%s: %s\n", view.Sanitize(e.Key), strings.Join(values, ", "))
	}
}

func nonNil(list []types.EntityMapping) []types.EntityMapping {
	if list == nil {
		return []types.EntityMapping{}
	}
	return list
}
