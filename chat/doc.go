// Package chat answers questions about the archive from the stored chunks.
//
// A Retriever exposes the search package to langchaingo; the Assistant runs
// a retrieval QA chain over it and lists the documents it drew on.
package chat
