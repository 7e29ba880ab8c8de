package shared

import "embed"

// EmbeddedFileToString reads a file from the embedded filesystem and
// returns its content as a string.
func EmbeddedFileToString(embeddedFileSystem embed.FS, path string) (string, error) {
	content, err := embeddedFileSystem.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
