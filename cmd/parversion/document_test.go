// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleXML = `<ul><li>one</li><li>two</li></ul>`

func writeSampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0640); err != nil {
		t.Fatalf("writing sample file: %v", err)
	}
	return path
}

func TestLoadDocument_BuildsDocAndBasisGraphs(t *testing.T) {
	path := writeSampleFile(t)

	docRoot, basisRoot, err := loadDocument(path)
	if err != nil {
		t.Fatalf("loadDocument() error = %v", err)
	}

	if docRoot.Data.Describe() == "" {
		t.Errorf("docRoot.Data.Describe() is empty, want a non-empty root description")
	}
	if len(basisRoot.Children()) != 1 {
		t.Fatalf("basisRoot has %d children, want 1", len(basisRoot.Children()))
	}
}

func TestLoadDocumentGraph_RejectsMissingFile(t *testing.T) {
	if _, err := loadDocumentGraph(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDocumentFeatureHash_DerivesFromTopLevelChildren(t *testing.T) {
	path := writeSampleFile(t)

	_, basisRoot, err := loadDocument(path)
	if err != nil {
		t.Fatalf("loadDocument() error = %v", err)
	}

	hashes := documentFeatureHash(basisRoot)
	if len(hashes) != 1 {
		t.Fatalf("documentFeatureHash() = %v, want exactly one top-level hash", hashes)
	}
	if hashes[0] != basisRoot.Children()[0].Hash {
		t.Errorf("documentFeatureHash() = %v, want the top-level child's shape hash", hashes)
	}
}
