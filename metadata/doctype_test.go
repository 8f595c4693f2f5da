package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseLabel(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		commessa string
		expected string
	}{
		{"at start", "2019AB22-P1.jpg", "2019AB22", "Fotografia fase restauro - Prima"},
		{"after dash", "foto-2019AB22-D12.jpg", "2019AB22", "Fotografia fase restauro - Durante"},
		{"after underscore", "Pala_2019AB22-F3_dettaglio.jpg", "2019AB22", "Fotografia fase restauro - Fine"},
		{"leftmost bounded match", "x2019AB22-P1_2019AB22-F2.jpg", "2019AB22", "Fotografia fase restauro - Fine"},
		{"not bounded", "x2019AB22-P1.jpg", "2019AB22", ""},
		{"digit required", "2019AB22-P.jpg", "2019AB22", ""},
		{"unknown phase", "2019AB22-X1.jpg", "2019AB22", ""},
		{"lowercase phase", "2019AB22-p1.jpg", "2019AB22", ""},
		{"commessa is literal", "2019.B22-P1.jpg", "2019AB22", ""},
		{"no commessa", "-P1.jpg", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := phaseLabel(tt.file, tt.commessa)
			assert.Equal(t, tt.expected, label)
			assert.Equal(t, tt.expected != "", ok)
		})
	}
}

func TestDocumentType_PhaseBeforeAnalysis(t *testing.T) {
	f := folder{commessa: "2019AB22"}
	assert.Equal(t, "Fotografia fase restauro - Prima", documentType("2019AB22-P1.JPG", f))
	assert.Equal(t, "png", documentType("ritratto.png", f))
}
