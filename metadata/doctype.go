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
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pdfCodes maps the code segment of a PDF file name to its document type.
var pdfCodes = map[string]string{
	"RES": "Scheda di restauro",
	"RTM": "Relazione tecnica indagini multispettrali",
	"RTS": "Relazione tecnica indagini scientifiche",
	"CAM": "Scheda di campionamento",
	"STR": "Scheda tecnica di rilevamento",
}

type keywordType struct {
	keyword string
	label   string
}

// pdfKeywords is searched in order; the first keyword found wins.
var pdfKeywords = []keywordType{
	{"scheda di restauro", "Scheda di restauro"},
	{"relazione tecnica", "Relazione tecnica"},
	{"campionamento", "Scheda di campionamento"},
	{"rilevamento", "Scheda tecnica di rilevamento"},
	{"mappature", "Mappature grafiche"},
	{"analisi", "Analisi della specie lignea"},
}

// analysisLabels maps a folder's analysis code to the multispectral technique.
var analysisLabels = map[string]string{
	"fc": "Falso colore",
	"ir": "Infrarosso in bianco e nero",
	"uv": "Fluorescenza ultravioletta",
	"rx": "Radiografia",
}

var phaseLabels = map[string]string{
	"P": "Fotografia fase restauro - Prima",
	"D": "Fotografia fase restauro - Durante",
	"F": "Fotografia fase restauro - Fine",
}

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"tif":  true,
	"tiff": true,
	"bmp":  true,
}

var analysisPhoto = regexp.MustCompile(`^M\d+`)

// extension returns the lowercased extension of name without the dot.
func extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

// documentType classifies a file from its name and the folder it belongs to.
func documentType(fileName string, f folder) string {
	ext := extension(fileName)
	switch {
	case ext == "pdf":
		return pdfType(fileName)
	case imageExtensions[ext]:
		return imageType(fileName, ext, f)
	default:
		return ext
	}
}

func pdfType(fileName string) string {
	stem := strings.TrimSuffix(fileName, path.Ext(fileName))
	tokens := strings.Split(stem, "_")
	if len(tokens) > 1 {
		if label, ok := pdfCodes[strings.ToUpper(tokens[1])]; ok {
			return label
		}
	}
	if label, ok := pdfCodes[strings.ToUpper(tokens[0])]; ok {
		return label
	}

	lower := strings.ToLower(fileName)
	for _, kw := range pdfKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.label
		}
	}
	return "pdf"
}

func imageType(fileName, ext string, f folder) string {
	if label, ok := phaseLabel(fileName, f.commessa); ok {
		return label
	}
	if analysisPhoto.MatchString(fileName) {
		return "Fotografia analisi - " + analysisLabel(f.analysisCode())
	}
	return ext
}

// phaseLabel looks for "{commessa}-{P|D|F}<digit>" at the start of fileName or
// right after a '-' or '_', returning the label of the leftmost match.
func phaseLabel(fileName, commessa string) (string, bool) {
	if commessa == "" {
		return "", false
	}
	prefix := commessa + "-"
	for from := 0; from < len(fileName); {
		i := strings.Index(fileName[from:], prefix)
		if i < 0 {
			break
		}
		start := from + i
		rest := fileName[start+len(prefix):]
		bounded := start == 0 || fileName[start-1] == '-' || fileName[start-1] == '_'
		if bounded && len(rest) >= 2 && rest[1] >= '0' && rest[1] <= '9' {
			if label, ok := phaseLabels[rest[:1]]; ok {
				return label, true
			}
		}
		from = start + 1
	}
	return "", false
}

func analysisLabel(code string) string {
	if label, ok := analysisLabels[code]; ok {
		return label
	}
	return cases.Title(language.Italian).String(code)
}
