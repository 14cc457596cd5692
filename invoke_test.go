package loom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeResolvesParameters(t *testing.T) {
	c := New()
	conn := &dbConnection{}
	require.NoError(t, RegisterValueFor(c, conn))

	results, err := c.Invoke(func(got *dbConnection) string {
		assert.Same(t, conn, got)
		return "called"
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "called", results[0])
}

func TestInvokeConstructsUnboundStructs(t *testing.T) {
	c := New()
	conn := &dbConnection{}
	require.NoError(t, RegisterValueFor(c, conn))
	require.NoError(t, c.RegisterValue(NewToken("UserTable"), "users"))

	_, err := c.Invoke(func(app *endToEndApp) {
		assert.Same(t, conn, app.Repo.Connection)
		assert.Equal(t, "users", app.Repo.Table)
	})
	require.NoError(t, err)
}

func TestInvokeErrorReturn(t *testing.T) {
	c := New()
	require.NoError(t, RegisterValueFor(c, &dbConnection{}))

	boom := errors.New("boom")
	_, err := c.Invoke(func(*dbConnection) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestInvokeNilErrorReturn(t *testing.T) {
	c := New()

	results, err := c.Invoke(func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0])
}

func TestInvokeRejectsNonFunctions(t *testing.T) {
	_, err := New().Invoke(42)
	assert.Error(t, err)

	_, err = New().Invoke(nil)
	assert.Error(t, err)
}

func TestInvokeRejectsVariadicFunctions(t *testing.T) {
	_, err := New().Invoke(func(...string) {})
	assert.Error(t, err)
}

func TestInvokeUnresolvedParameter(t *testing.T) {
	_, err := New().Invoke(func(n int) {})

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
}
