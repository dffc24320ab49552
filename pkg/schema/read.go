package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cabledraw/pkg/errors"
)

// ReadFile loads an assembly schema from a JSON or YAML file. The format is
// chosen by extension (.yaml/.yml for YAML, anything else JSON).
func ReadFile(path string) (*Assembly, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "schema file %s", path)
		}
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadJSON(f)
	}
}

// ReadJSON decodes an assembly schema from JSON.
func ReadJSON(r io.Reader) (*Assembly, error) {
	var a Assembly
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode JSON schema")
	}
	return &a, nil
}

// ReadYAML decodes an assembly schema from YAML.
func ReadYAML(r io.Reader) (*Assembly, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var a Assembly
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode YAML schema")
	}
	return &a, nil
}
