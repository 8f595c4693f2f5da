// Package ingestion loads the documents listed in a manifest into the vector store.
//
// The Pipeline type manages the ingestion workflow for each manifest entry:
//   - Fetching the object from the bucket and extracting its text
//   - Splitting the text into overlapping chunks tagged with the entry's metadata
//   - Embedding the chunks in batches and replacing any previously stored chunks
//   - Recording a checkpoint so the document is skipped on the next run
//
// Documents are fetched and split concurrently on a worker pool. Embedding and
// storage run sequentially. A document that fails is logged and counted in the
// Report; it never aborts the run.
package ingestion
