package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	err := WithContext(New(CodeNonZeroExit, "Command failed: boom"), "exit_code", 2)
	resp := ToJSON(err)

	require.NotNil(t, resp)
	require.Equal(t, "NON_ZERO_EXIT", resp.Code)
	require.Equal(t, "Command failed: boom", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Equal(t, 2, resp.Context["exit_code"])
}

func TestToJSON_StandardError(t *testing.T) {
	resp := ToJSON(stderrors.New("something went wrong"))

	require.Equal(t, "UNKNOWN", resp.Code)
	require.Equal(t, "something went wrong", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Nil(t, ToJSON(nil))
}

func TestToJSON_HidesCauses(t *testing.T) {
	cause := stderrors.New("open /etc/secret: permission denied")
	resp := ToJSON(Wrap(cause, CodeInvalidConfig, "load config"))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	require.NotContains(t, string(data), "/etc/secret")
	require.NotContains(t, string(data), "context")
}

func TestMarshalJSON(t *testing.T) {
	original := WithContext(New(CodeTimeout, "command timed out after 100ms"), "signal", "SIGTERM")

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Equal(t, "TIMEOUT", resp.Code)
	require.Equal(t, "RETRYABLE", resp.Classification)
	require.Equal(t, "SIGTERM", resp.Context["signal"])
}
