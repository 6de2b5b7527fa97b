package e

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMsg(t *testing.T) {
	assert.Equal(t, "موفق", GetMsg(SUCCESS))
	assert.Equal(t, "موجودی کافی نیست", GetMsg(ERROR_STOCK_NOT_ENOUGH))
}

func TestGetMsgUnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, MsgFlags[ERROR], GetMsg(999999))
}
