package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// readAdvertisement decodes an advertisement from a JSON or YAML file. "-"
// reads standard input, which is decoded as JSON unless it starts like YAML.
func readAdvertisement(path string, stdin io.Reader) (*domain.Advertisement, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path from trusted CLI flag
	}
	if err != nil {
		return nil, fmt.Errorf("reading advertisement: %w", err)
	}

	ad := &domain.Advertisement{}
	if isYAML(path, data) {
		if err := yaml.Unmarshal(data, ad); err != nil {
			return nil, fmt.Errorf("parsing advertisement YAML: %w", err)
		}
		return ad, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(ad); err != nil {
		return nil, fmt.Errorf("parsing advertisement JSON: %w", err)
	}
	return ad, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{'
}

type uriExpander interface {
	AdvertisementURI(id uuid.UUID) string
}

// advertisementTarget turns an advertisement id or URI argument into the URI
// the client requests.
func advertisementTarget(c uriExpander, arg string) string {
	if id, err := uuid.Parse(arg); err == nil {
		return c.AdvertisementURI(id)
	}
	return arg
}
