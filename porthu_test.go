package porthu_test

import (
	"testing"

	porthu "github.com/zmolnar/porthu-addon"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := porthu.Errorf(porthu.ENOTFOUND, "meta %q not found", "porthu:movie:movie-1")

	assert.Equal(t, porthu.ENOTFOUND, porthu.ErrorCode(err))
	assert.Equal(t, "meta \"porthu:movie:movie-1\" not found", porthu.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, porthu.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, porthu.ErrorMessage(nil))
}
