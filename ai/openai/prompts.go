package openai

import (
	"fmt"
	"strings"

	"github.com/highestlab/ai4restory/ai"
)

const entityResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text": {"type": "string"},
          "label": {"type": "string"}
        },
        "required": ["text", "label"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities"],
  "additionalProperties": false
}`

const entityPromptTemplate = `You are a named entity recognizer for Italian text. The input is a fragment
of a folder or file name from the archive of an art restoration company. Words may be separated by
spaces instead of punctuation and capitalization may be missing.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation or text outside the object. Your output must exactly follow this schema:

%s

Rules:
- Label must be exactly one of: %s.
- PER is a person, such as a painter, sculptor or architect. LOC is a place. ORG is an organization or institution. MISC is anything else worth naming.
- Copy entity text exactly as it appears in the input. Do not translate or correct it.
- Titles of artworks are not entities.
- If nothing can be identified, return {"entities": []}.

Example:
Input: "Giovanni Bellini Madonna col Bambino"
Output:
{"entities":[{"text":"Giovanni Bellini","label":"PER"}]}

Example:
Input: "Chiesa di San Marco Venezia"
Output:
{"entities":[{"text":"Chiesa di San Marco","label":"ORG"},{"text":"Venezia","label":"LOC"}]}

Example:
Input: "Lampadario"
Output:
{"entities":[]}`

const transcriptionPrompt = `Trascrivi fedelmente tutto il testo leggibile presente nell'immagine.
Se l'immagine non contiene testo, descrivi brevemente in italiano il soggetto rappresentato e il suo stato di conservazione.
Rispondi solo con la trascrizione o la descrizione, senza commenti.`

// buildEntityPrompt creates the system prompt with entity labels embedded.
func buildEntityPrompt() string {
	return fmt.Sprintf(entityPromptTemplate,
		entityResponseSchema,
		strings.Join(ai.EntityLabels, ", "))
}
