package command

import (
	"context"
	"testing"
)

// testContext stands in for testing.T.Context, which needs Go 1.24.
// The returned context is cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
