package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/gridsweep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// InvokerFixture describes the solver commands a contract run can use.
// Each field is an invocation expected to behave as named.
type InvokerFixture struct {
	Succeeds domain.Invocation
	ExitsTwo domain.Invocation
	Missing  domain.Invocation
}

// RunInvokerContract runs a suite of tests to verify that an Invoker
// implementation adheres to the defined interface contract.
func RunInvokerContract(t *testing.T, inv Invoker, fx InvokerFixture) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		status, err := inv.Invoke(ctx, fx.Succeeds)
		require.NoError(t, err)
		assert.True(t, status.Success())
	})

	t.Run("Non-zero exit is a status, not an error", func(t *testing.T) {
		status, err := inv.Invoke(ctx, fx.ExitsTwo)
		require.NoError(t, err)
		assert.Equal(t, 2, status.Code)
	})

	t.Run("Missing solver is a status, not an error", func(t *testing.T) {
		status, err := inv.Invoke(ctx, fx.Missing)
		require.NoError(t, err)
		assert.Equal(t, domain.ExitNotFound, status.Code)
	})

	t.Run("Canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := inv.Invoke(cctx, fx.Succeeds)
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}
