/*
Package docmon provides tooling to version text documents.

A document is a block of metadata followed by free-form content. Docmon keeps immutable
snapshots of document versions, branches documents, and merges concurrent edits with a
three-way merge, leaving conflicts to be resolved interactively or through a conflict artifact.

The library lives under pkg/core. The command line tool is cmd/docmon.
*/
package docmon
