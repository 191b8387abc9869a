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

import "strings"

// applyDotRule applies one of the dot-segment cases of RFC 3986,
// Section 5.2.4 to the head of in. It returns the remaining input, the
// output segment stack, and whether a case matched.
func applyDotRule(in string, output []string) (string, []string, bool) {
	switch {
	case strings.HasPrefix(in, "../"):
		return in[3:], output, true
	case strings.HasPrefix(in, "./"):
		return in[2:], output, true
	case strings.HasPrefix(in, "/./"):
		return "/" + in[3:], output, true
	case in == "/.":
		return "/", output, true
	case strings.HasPrefix(in, "/../"):
		return "/" + in[4:], popSegment(output), true
	case in == "/..":
		return "/", popSegment(output), true
	case in == "." || in == "..":
		return "", output, true
	}
	return in, output, false
}

func popSegment(output []string) []string {
	if len(output) == 0 {
		return output
	}
	return output[:len(output)-1]
}

// firstSegment splits off the first path segment, including its leading
// '/' if any, up to but not including the next '/'.
func firstSegment(in string) (string, string) {
	i := 0
	if in[0] == '/' {
		i = 1
	}
	if j := strings.IndexByte(in[i:], '/'); j >= 0 {
		return in[:i+j], in[i+j:]
	}
	return in, ""
}

// removeDotSegments implements the "Remove Dot Segments" algorithm of
// RFC 3986, Section 5.2.4.
func removeDotSegments(input string) string {
	var output []string
	in := input

	for len(in) > 0 {
		var applied bool
		in, output, applied = applyDotRule(in, output)
		if applied {
			continue
		}
		var segment string
		segment, in = firstSegment(in)
		output = append(output, segment)
	}

	return strings.Join(output, "")
}

// mergePaths merges a relative reference path with the base path per
// RFC 3986, Section 5.2.3.
func mergePaths(baseHasAuthority bool, basePath, refPath string) string {
	if baseHasAuthority && basePath == "" {
		return "/" + refPath
	}
	if i := strings.LastIndexByte(basePath, '/'); i >= 0 {
		return basePath[:i+1] + refPath
	}
	return refPath
}
