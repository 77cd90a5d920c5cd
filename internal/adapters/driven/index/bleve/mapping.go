// Package bleve adapts the bleve full-text engine to the index ports.
// It owns the index schema (two stored, tokenized text fields: path and
// contents) and translates queries, batches, and highlight fragments.
package bleve

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/scour-search/scour-cli/internal/core/domain"
)

const (
	fieldPath     = "path"
	fieldContents = "contents"

	// metaFile is bleve's on-disk marker; its presence denotes
	// "index exists" at a directory.
	metaFile = "index_meta.json"
)

// buildIndexMapping constructs the expected schema. Both fields are
// indexed and stored: path so results can print it and match on path
// pieces, contents as the main full-text field.
func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldPath, textField)
	doc.AddFieldMappingsAt(fieldContents, textField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}

// schemasEqual compares two index mappings structurally (field names,
// types, and flags), not referentially, via their canonical JSON forms.
func schemasEqual(a, b mapping.IndexMapping) (bool, error) {
	aj, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("marshal schema: %w", err)
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("marshal schema: %w", err)
	}
	return bytes.Equal(aj, bj), nil
}

// validateSchema checks a persisted mapping against the expected one.
func validateSchema(persisted mapping.IndexMapping) error {
	equal, err := schemasEqual(persisted, buildIndexMapping())
	if err != nil {
		return err
	}
	if !equal {
		return domain.ErrSchemaMismatch
	}
	return nil
}
