//go:build !darwin

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonDarwinFallbacks(t *testing.T) {
	SetActivationPolicy()
	ActivateApp()

	assert.True(t, IsAppActive())
}
