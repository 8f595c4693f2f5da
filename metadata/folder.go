// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package metadata

import (
	"regexp"
	"strings"
)

// folderPattern matches a base folder: digits, optional letters, two digits,
// then at least two further '-' or '_' delimited parts.
var folderPattern = regexp.MustCompile(`^\d+[A-Za-z]*\d{2}(?:[-_].+){2,}`)

// trailingYear captures the last four digits of a project code.
var trailingYear = regexp.MustCompile(`(\d{4})$`)

// folder is the decomposition of a base folder name.
type folder struct {
	name     string
	commessa string
	luogo    string
	rest     string
}

// detectFolder returns the first non-terminal segment that looks like a base
// folder, or the first segment when none does.
func detectFolder(segments []string) string {
	for _, s := range segments[:len(segments)-1] {
		if folderPattern.MatchString(s) {
			return s
		}
	}
	return segments[0]
}

// parseFolder splits name on '_' when it contains one, otherwise on '-'.
// The two forms are never mixed.
func parseFolder(name string) folder {
	f := folder{name: name}
	if strings.Contains(name, "_") {
		parts := strings.SplitN(name, "_", 3)
		f.commessa = parts[0]
		if len(parts) > 1 {
			f.luogo = parts[1]
		}
		if len(parts) > 2 {
			f.rest = parts[2]
		}
		return f
	}

	tokens := strings.Split(name, "-")
	if len(tokens) >= 3 {
		f.commessa = strings.Join(tokens[:3], "-")
	}
	if len(tokens) > 3 {
		f.luogo = tokens[3]
	}
	if len(tokens) > 4 {
		f.rest = strings.Join(tokens[4:], "-")
	}
	return f
}

// year returns the trailing four-digit year of the project code, if any.
func (f folder) year() string {
	if m := trailingYear.FindStringSubmatch(f.commessa); m != nil {
		return m[1]
	}
	return ""
}

// analysisCode returns the second '_' token of the folder name, lowercased.
func (f folder) analysisCode() string {
	parts := strings.Split(f.name, "_")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}
