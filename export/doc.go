// Package export writes generated variants to disk: the packed sheet blob,
// a Go source file embedding it, image previews and PDF specimens.
//
// Files are staged in their target directory and renamed into place once
// written and synced, so a failed write never leaves a partial artifact
// behind.
package export
