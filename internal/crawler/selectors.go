package crawler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
)

// LoadSelectors reads selector overrides from a YAML file. Keys left out of
// the file keep their DefaultSelectors value.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, crawlerrors.NewConfiguration("failed to read selectors file", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sel); err != nil && !errors.Is(err, io.EOF) {
		return DefaultSelectors(), crawlerrors.NewConfiguration(fmt.Sprintf("invalid selectors file %s", path), err)
	}

	if err := sel.validate(); err != nil {
		return DefaultSelectors(), err
	}
	return sel, nil
}

// validate rejects overrides that blank out a required selector
func (s Selectors) validate() error {
	required := map[string]string{
		"listing_container": s.ListingContainer,
		"listing_block":     s.ListingBlock,
		"detail_cell":       s.DetailCell,
	}
	for key, value := range required {
		if value == "" {
			return crawlerrors.NewConfiguration(fmt.Sprintf("selector %s must not be empty", key), nil)
		}
	}
	return nil
}
