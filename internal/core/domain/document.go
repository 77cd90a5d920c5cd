package domain

// Document is a single indexable file.
// The path doubles as the document ID: one document per path per pass.
type Document struct {
	// Path is the absolute file path.
	Path string

	// Contents is the full decoded text of the file.
	Contents string
}
