package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertResolve(t *testing.T) {
	t.Run("活动告警可解决", func(t *testing.T) {
		alert := &Alert{Status: AlertStatusActive}

		changed := alert.Resolve()

		assert.True(t, changed)
		assert.Equal(t, AlertStatusResolved, alert.Status)
	})

	t.Run("重复解决不产生变化", func(t *testing.T) {
		alert := &Alert{Status: AlertStatusActive}

		assert.True(t, alert.Resolve())
		assert.False(t, alert.Resolve())
		assert.Equal(t, AlertStatusResolved, alert.Status)
	})
}
