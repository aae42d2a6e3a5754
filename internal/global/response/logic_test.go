package response

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	require.ErrorIs(t, ErrInvalidTransition.WithTips("状态不对"), ErrInvalidTransition)
	require.NotErrorIs(t, ErrInvalidTransition, ErrPreconditionFailed)
}

func TestWithTipsKeepsCode(t *testing.T) {
	err := ErrPreconditionFailed.WithTips(PreconditionIncompleteChildren)
	require.Equal(t, ErrPreconditionFailed.Code, err.Code)
	require.Contains(t, err.Message, ErrPreconditionFailed.Message)
	require.Contains(t, err.Message, PreconditionIncompleteChildren)

	// 原对象不受影响
	require.NotContains(t, ErrPreconditionFailed.Message, PreconditionIncompleteChildren)
}

func TestWithOriginKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrDatabase.WithOrigin(cause)

	require.Equal(t, ErrDatabase.Code, err.Code)
	require.ErrorIs(t, err, ErrDatabase)
	require.Contains(t, err.Origin, "connection refused")
	require.NotNil(t, err.StackTrace())
}
