// Package metadata derives structured records from the object names of a
// restoration archive.
//
// Object names follow the company's folder convention: a base folder such as
// "2021AB22_Torino_Bellini-Pala-inv0042" carries the project code (commessa),
// the location (luogo) and a free-form remainder naming the author and the
// work. File names carry the document type, either as a three-letter code
// ("RES", "RTM", ...) or, for photographs, as a restoration-phase or analysis
// marker.
//
// An Extractor turns a listing into one core.FileRecord per object name:
//
//	extractor := metadata.NewExtractor(provider.EntityRecognizer())
//	records := extractor.Extract(ctx, names)
//
// Extraction never fails. Names that do not follow the convention yield
// records with empty fields.
package metadata
