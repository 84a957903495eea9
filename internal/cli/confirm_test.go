package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase y accepts", input: "y\n", want: true},
		{name: "yes accepts", input: "yes\n", want: true},
		{name: "uppercase accepts", input: "YES\n", want: true},
		{name: "n declines", input: "n\n", want: false},
		{name: "empty line declines", input: "\n", want: false},
		{name: "garbage declines", input: "sure why not\n", want: false},
		{name: "eof without newline declines", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(context.Background(), strings.NewReader(tt.input), &out, "Delete product?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestConfirmCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	blocked, w := newBlockedReader(t)
	defer w()

	_, err := Confirm(ctx, blocked, &out, "Delete product?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

// newBlockedReader returns a reader that never produces data until the
// cleanup function runs.
func newBlockedReader(t *testing.T) (*blockingReader, func()) {
	t.Helper()
	done := make(chan struct{})
	return &blockingReader{done: done}, func() { close(done) }
}

type blockingReader struct {
	done chan struct{}
}

func (r *blockingReader) Read(_ []byte) (int, error) {
	<-r.done
	return 0, io.EOF
}
