// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package persist

import "testing"

func TestFeatureKey_IsOrderIndependent(t *testing.T) {
	a := FeatureKey([]string{"hash-1", "hash-2", "hash-3"})
	b := FeatureKey([]string{"hash-3", "hash-1", "hash-2"})
	if a != b {
		t.Errorf("FeatureKey() depends on input order: %q != %q", a, b)
	}
}

func TestFeatureKey_DiffersOnDifferentSets(t *testing.T) {
	a := FeatureKey([]string{"hash-1", "hash-2"})
	b := FeatureKey([]string{"hash-1", "hash-3"})
	if a == b {
		t.Error("expected distinct feature-hash sets to produce distinct keys")
	}
}
