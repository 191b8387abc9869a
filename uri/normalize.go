/*
Copyright 2026 Uritk Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uri

import "golang.org/x/text/unicode/norm"

// ParseNormalizedIRI normalizes s to Unicode Normalization Form C and then
// parses it as an absolute IRI. Per RFC 3987, Sections 3.1 and 5.3.2.2,
// this entry point suits IRIs whose source is not already NFC (read from
// paper, converted from a legacy encoding) and applications that compare
// IRIs for canonical equivalence. ParseIRI, by contrast, preserves the
// exact input character sequence.
func ParseNormalizedIRI(s string) (*URI, error) {
	return ParseIRI(norm.NFC.String(s))
}

// ParseNormalizedIRIReference normalizes s to NFC and then parses it as an
// IRI reference.
func ParseNormalizedIRIReference(s string) (*URI, error) {
	return ParseIRIReference(norm.NFC.String(s))
}
