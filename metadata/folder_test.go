package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFolder(t *testing.T) {
	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{"base folder first", []string{"2021ABC22-LOC-Rossi-inv001", "photo.jpg"}, "2021ABC22-LOC-Rossi-inv001"},
		{"base folder nested", []string{"Archivio", "2019AB22_Venezia_Pala", "foto.jpg"}, "2019AB22_Venezia_Pala"},
		{"first match wins", []string{"2019AB22_Venezia_Pala", "2020CD21_Roma_Tela", "x.pdf"}, "2019AB22_Venezia_Pala"},
		{"file name never considered", []string{"Archivio", "2019AB22_Venezia_Pala"}, "Archivio"},
		{"only one separator", []string{"2019AB22_Venezia", "x.pdf"}, "2019AB22_Venezia"},
		{"no match falls back to first", []string{"Varie", "Sub", "x.pdf"}, "Varie"},
		{"single segment", []string{"x.pdf"}, "x.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectFolder(tt.path))
		})
	}
}

func TestFolderPattern(t *testing.T) {
	assert.True(t, folderPattern.MatchString("2021ABC22-LOC-Rossi"))
	assert.True(t, folderPattern.MatchString("2021_Torino_MarioRossi-inv2023"))
	assert.True(t, folderPattern.MatchString("123456_a_b"))
	assert.False(t, folderPattern.MatchString("PROJ22_Torino_x"))
	assert.False(t, folderPattern.MatchString("2021AB2_Torino_x"), "needs two digits after the letters")
	assert.False(t, folderPattern.MatchString("2021AB22-Torino"))
}

func TestParseFolder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected folder
	}{
		{
			name:     "underscore form",
			input:    "2021_Torino_MarioRossi-inv2023",
			expected: folder{name: "2021_Torino_MarioRossi-inv2023", commessa: "2021", luogo: "Torino", rest: "MarioRossi-inv2023"},
		},
		{
			name:     "underscore form keeps later underscores in rest",
			input:    "2019AB22_Venezia_Bellini_Pala",
			expected: folder{name: "2019AB22_Venezia_Bellini_Pala", commessa: "2019AB22", luogo: "Venezia", rest: "Bellini_Pala"},
		},
		{
			name:     "underscore form without rest",
			input:    "2019AB22_Venezia",
			expected: folder{name: "2019AB22_Venezia", commessa: "2019AB22", luogo: "Venezia"},
		},
		{
			name:     "dash form",
			input:    "2021ABC22-LOC-Rossi-inv001",
			expected: folder{name: "2021ABC22-LOC-Rossi-inv001", commessa: "2021ABC22-LOC-Rossi", luogo: "inv001"},
		},
		{
			name:     "dash form with rest",
			input:    "21-AB-2019-Roma-Bellini-Pala",
			expected: folder{name: "21-AB-2019-Roma-Bellini-Pala", commessa: "21-AB-2019", luogo: "Roma", rest: "Bellini-Pala"},
		},
		{
			name:     "dash form too short",
			input:    "Varie-Foto",
			expected: folder{name: "Varie-Foto"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseFolder(tt.input))
		})
	}
}

func TestFolder_Year(t *testing.T) {
	assert.Equal(t, "2021", folder{commessa: "2021"}.year())
	assert.Equal(t, "2019", folder{commessa: "21-AB-2019"}.year())
	assert.Equal(t, "2022", folder{commessa: "AB12022"}.year())
	assert.Empty(t, folder{commessa: "2019AB22"}.year())
	assert.Empty(t, folder{}.year())
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name     string
		rest     string
		author   string
		expected string
	}{
		{"author and inventory removed", "Bellini-Pala-inv0042", "Bellini", "Pala"},
		{"anonymous keeps rest", "Giovanni-Bellini-inv1", "anonimo", "Giovanni-Bellini"},
		{"no author", "Pala", "", "Pala"},
		{"only first occurrence of author", "Rossi-Rossi-Ritratto", "Rossi", "Rossi-Ritratto"},
		{"author last token not removed", "Pala-Bellini", "Bellini", "Pala-Bellini"},
		{"inventory needs a digit", "Pala-inventario", "", "Pala-inventario"},
		{"only inventory", "Bellini-inv3", "Bellini", "inv3"},
		{"empty after strip", "-inv12", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveTitle(tt.rest, tt.author))
		})
	}
}

func TestDocumentType(t *testing.T) {
	underscore := parseFolder("2019AB22_ir_Pala")
	dash := parseFolder("2021ABC22-LOC-Rossi-inv001")

	tests := []struct {
		name     string
		file     string
		folder   folder
		expected string
	}{
		{"pdf code in second token", "2019AB22_RTM_01.pdf", underscore, "Relazione tecnica indagini multispettrali"},
		{"pdf code lowercase", "x_cam.pdf", underscore, "Scheda di campionamento"},
		{"pdf code in first token", "RES_scheda.pdf", underscore, "Scheda di restauro"},
		{"pdf code without other tokens", "STR.pdf", underscore, "Scheda tecnica di rilevamento"},
		{"pdf keyword", "Relazione tecnica finale.pdf", underscore, "Relazione tecnica"},
		{"pdf keyword order", "mappature e analisi.pdf", underscore, "Mappature grafiche"},
		{"pdf first keyword in table wins", "analisi scheda di restauro.pdf", underscore, "Scheda di restauro"},
		{"pdf fallback", "documento.pdf", underscore, "pdf"},
		{"pdf uppercase extension", "2019AB22_RTS.PDF", underscore, "Relazione tecnica indagini scientifiche"},
		{"phase at start", "2019AB22-P12.jpg", underscore, "Fotografia fase restauro - Prima"},
		{"phase after underscore", "foto_2019AB22-D3.png", underscore, "Fotografia fase restauro - Durante"},
		{"phase after dash", "abc-2019AB22-F1.tif", underscore, "Fotografia fase restauro - Fine"},
		{"phase needs digits", "2019AB22-P.jpg", underscore, "jpg"},
		{"phase with dash commessa", "2021ABC22-LOC-Rossi-F07.jpeg", dash, "Fotografia fase restauro - Fine"},
		{"analysis photo", "M001.tiff", underscore, "Fotografia analisi - Infrarosso in bianco e nero"},
		{"analysis unknown code title cased", "M2.bmp", parseFolder("2019AB22_multispettrale_Pala"), "Fotografia analisi - Multispettrale"},
		{"analysis code lowercased", "M2.jpg", parseFolder("2019AB22_UV_Pala"), "Fotografia analisi - Fluorescenza ultravioletta"},
		{"analysis without underscore", "M2.jpg", dash, "Fotografia analisi - "},
		{"plain image", "photo.jpg", dash, "jpg"},
		{"other extension", "relazione.docx", underscore, "docx"},
		{"uppercase other extension", "TABELLA.XLSX", underscore, "xlsx"},
		{"no extension", "LEGGIMI", underscore, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, documentType(tt.file, tt.folder))
		})
	}
}
