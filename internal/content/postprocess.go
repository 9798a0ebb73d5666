// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package content

// Postprocess removes empty subtrees from a harvested Content tree: any
// InnerContent entry with no values of its own and no non-empty
// descendants is dropped. Running it twice is a no-op — every remaining
// InnerContent entry is already non-empty, so the filter keeps everything
// the second time through.
//
// Grounded on spec.md §4.5 step 7 (postprocess_content) and §8's stated
// idempotence property.
func Postprocess(c *Content) {
	kept := c.InnerContent[:0]
	for _, inner := range c.InnerContent {
		Postprocess(&inner)
		if !inner.IsEmpty() {
			kept = append(kept, inner)
		}
	}
	c.InnerContent = kept
}
