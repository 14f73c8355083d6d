package source

import (
	"bytes"
	"context"
	_ "embed"
	"io"
)

//go:embed dataSource.txt
var defaultData []byte

// EmbeddedName identifies the bundled default data set.
const EmbeddedName = "embedded:dataSource.txt"

// EmbeddedSource serves a data set compiled into the binary. It is never
// archived.
type EmbeddedSource struct {
	data []byte
}

// NewEmbeddedSource returns the bundled default data set.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{data: defaultData}
}

func (s *EmbeddedSource) Name() string {
	return EmbeddedName
}

func (s *EmbeddedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s *EmbeddedSource) Archive(context.Context) (string, error) {
	return "", nil
}

// Empty reports whether there is nothing to import.
func (s *EmbeddedSource) Empty() bool {
	return len(bytes.TrimSpace(s.data)) == 0
}
