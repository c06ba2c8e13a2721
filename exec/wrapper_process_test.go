//go:build unix

package exec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/childprocess"
	"github.com/jmgilman/go/errors"
)

func TestWrapperBasicExecution(t *testing.T) {
	echo := NewWrapper(New(), "echo")

	result, err := echo.Run("hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}

func TestWrapperChaining(t *testing.T) {
	dir := t.TempDir()
	sh := NewWrapper(New(), "sh")

	result, err := sh.
		WithEnv(map[string]string{"VAR1": "value1"}).
		WithEnv(map[string]string{"VAR2": "value2"}).
		WithDir(dir).
		Run("-c", "echo $VAR1 $VAR2 && ls -a")
	require.NoError(t, err)
	assert.Equal(t, "value1 value2\n.\n..\n", result.Stdout)
}

func TestWrapperLocalOverridesGlobal(t *testing.T) {
	sh := NewWrapper(New(WithEnv(map[string]string{"TEST_VAR": "global"})), "sh")

	result, err := sh.WithEnv(map[string]string{"TEST_VAR": "local"}).Run("-c", "echo $TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "local\n", result.Stdout)
}

func TestWrapperCommandFailure(t *testing.T) {
	result, err := NewWrapper(New(), "false").Run()
	require.Error(t, err)
	require.NotNil(t, result)

	var execErr *childprocess.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.ExitCode)
}

func TestWrapperWithTimeout(t *testing.T) {
	_, err := NewWrapper(New(), "sleep").WithTimeout(100 * time.Millisecond).Run("5")
	require.Error(t, err)
	assert.Equal(t, errors.CodeTimeout, errors.GetCode(err))
	assert.True(t, errors.IsRetryable(err))
}
