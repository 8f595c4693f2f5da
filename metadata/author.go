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
	"context"
	"regexp"
	"strings"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
)

// titleBlacklist holds words common in artwork titles that a recognizer may
// mistake for surnames.
var titleBlacklist = map[string]bool{
	"Lampadario": true,
	"Scena":      true,
	"Specchiera": true,
	"Paravento":  true,
	"Scrivania":  true,
}

var (
	tokenSeparator = regexp.MustCompile(`[-_]`)

	// inventoryMarker splits a title from an optional trailing "-inv<digit>..." suffix.
	inventoryMarker = regexp.MustCompile(`^(.*?)(?:-inv\d.*)?$`)
)

// resolveAuthor applies the author rules in priority order; the first that
// succeeds wins:
//
//  1. the first token (split on '-' and '_') recognized as a person;
//  2. AnonymousAuthor when the whole remainder names more than one distinct person;
//  3. AnonymousAuthor when the remainder has more than one token;
//  4. no author.
func (e *Extractor) resolveAuthor(ctx context.Context, rest string) string {
	tokens := tokenSeparator.Split(rest, -1)

	for _, tok := range tokens {
		if tok == "" || titleBlacklist[tok] {
			continue
		}
		if ai.HasPerson(e.recognize(ctx, tok)) {
			return tok
		}
	}

	full := strings.NewReplacer("-", " ", "_", " ").Replace(rest)
	if len(ai.Persons(e.recognize(ctx, full))) > 1 {
		return core.AnonymousAuthor
	}

	if len(tokens) > 1 {
		return core.AnonymousAuthor
	}
	return ""
}

// resolveTitle removes the author and any inventory marker from rest.
func resolveTitle(rest, author string) string {
	tail := rest
	if author != "" && author != core.AnonymousAuthor {
		tail = strings.Replace(rest, author+"-", "", 1)
	}
	m := inventoryMarker.FindStringSubmatch(tail)
	if m == nil {
		return ""
	}
	return m[1]
}
