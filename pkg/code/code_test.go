package code

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateRegisteredCode(t *testing.T) {
	detailed := ErrorConnectionNotFound.WithDetails("id=abc")

	assert.True(t, detailed.HaveDetails())
	assert.False(t, ErrorConnectionNotFound.HaveDetails())
	assert.Empty(t, ErrorConnectionNotFound.Details())
	assert.Equal(t, http.StatusNotFound, detailed.StatusCode())
}

func TestErrorsIsMatchesCopies(t *testing.T) {
	var err error = ErrorReminderClearFailed.WithDetails("db locked")

	assert.True(t, errors.Is(err, ErrorReminderClearFailed))
	assert.False(t, errors.Is(err, ErrorStatusUpdateFailed))
}

func TestLangFallback(t *testing.T) {
	assert.Equal(t, "联系人不存在", ErrorConnectionNotFound.MsgIn("zh-CN"))
	assert.Equal(t, "Connection not found", ErrorConnectionNotFound.MsgIn("fr"))
	assert.Equal(t, LangZH, NormalizeLang("zh-CN,zh;q=0.9"))
	assert.Equal(t, LangEN, NormalizeLang(""))
}
