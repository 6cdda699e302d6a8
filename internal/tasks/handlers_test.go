package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailDomain(t *testing.T) {
	assert.Equal(t, "fc.example", mailDomain("kim@fc.example"))
	assert.Equal(t, "fc.example", mailDomain("kim@sub@fc.example"))
	assert.Equal(t, "no-at-sign", mailDomain("no-at-sign"))
}
