package ai

// Entity labels, following the Italian WikiNER convention.
const (
	LabelPerson       = "PER"
	LabelLocation     = "LOC"
	LabelOrganization = "ORG"
	LabelMisc         = "MISC"
)

// EntityLabels lists the labels a recognizer may assign.
var EntityLabels = []string{LabelPerson, LabelLocation, LabelOrganization, LabelMisc}

// Entity is a span of text classified by a recognizer.
type Entity struct {
	// Text is the entity as it appears in the input, e.g. "Mario Rossi".
	Text string

	// Label is one of EntityLabels.
	Label string
}

// Persons returns the distinct texts of the person entities, in order of first appearance.
func Persons(entities []Entity) []string {
	seen := make(map[string]bool)
	var persons []string
	for _, e := range entities {
		if e.Label != LabelPerson || seen[e.Text] {
			continue
		}
		seen[e.Text] = true
		persons = append(persons, e.Text)
	}
	return persons
}

// HasPerson reports whether any entity is labelled as a person.
func HasPerson(entities []Entity) bool {
	for _, e := range entities {
		if e.Label == LabelPerson {
			return true
		}
	}
	return false
}
