package chain

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
)

// Document is a ledger of previous transactions together with an optional
// transaction that spends from it.
type Document struct {
	Ledger      map[string]model.Transaction `json:"ledger"`
	Transaction *model.Transaction           `json:"transaction,omitempty"`
}

// MemoryLedger returns the document ledger as a Ledger.
func (d Document) MemoryLedger() MemoryLedger {
	return MemoryLedger(d.Ledger)
}

// ReadDocument decodes a single JSON document from r. Unknown fields are
// rejected.
func ReadDocument(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if dec.More() {
		return Document{}, fmt.Errorf("decode document: trailing data")
	}
	return doc, nil
}

// ReadDocumentFile opens path and decodes it with ReadDocument.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
