package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceFromRequest(t *testing.T) {
	watt := 300.0

	t.Run("缺省遗忘概率取0.5", func(t *testing.T) {
		device := deviceFromRequest(DeviceRequest{
			Name:   "投影仪",
			Watt:   &watt,
			RoomID: 1,
		})

		assert.Equal(t, 0.5, device.UsageProbability)
		assert.Equal(t, watt, device.Watt)
		assert.Equal(t, uint(1), device.RoomID)
	})

	t.Run("显式零概率保持为零", func(t *testing.T) {
		zero := 0.0
		device := deviceFromRequest(DeviceRequest{
			Name:             "应急灯",
			Watt:             &watt,
			RoomID:           1,
			UsageProbability: &zero,
		})

		assert.Equal(t, 0.0, device.UsageProbability)
	})

	t.Run("显式概率按原值保留", func(t *testing.T) {
		prob := 0.8
		device := deviceFromRequest(DeviceRequest{
			Name:             "饮水机",
			Watt:             &watt,
			RoomID:           2,
			UsageProbability: &prob,
		})

		assert.Equal(t, 0.8, device.UsageProbability)
	})
}
