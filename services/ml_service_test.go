package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMLService 构造一个指向测试服务器的评分客户端
func newTestMLService(url string) *MLService {
	return &MLService{
		Config: &config.Config{MLServiceURL: url},
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestMLServicePredict(t *testing.T) {
	t.Run("正常响应按原样返回", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"isAnomaly":true,"anomalyScore":87.5,"averageUsage":12.3,"deviation":3.2}`))
		}))
		defer server.Close()

		svc := newTestMLService(server.URL)
		prediction := svc.Predict(context.Background(), 1, 250)

		require.NotNil(t, prediction)
		assert.True(t, prediction.IsAnomaly)
		assert.Equal(t, 87.5, prediction.AnomalyScore)
		assert.Equal(t, 12.3, prediction.AverageUsage)
		assert.False(t, prediction.Degraded)
	})

	t.Run("非200状态码返回兜底值", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newTestMLService(server.URL)
		prediction := svc.Predict(context.Background(), 1, 250)

		require.NotNil(t, prediction)
		assert.True(t, prediction.Degraded)
		assert.False(t, prediction.IsAnomaly)
		assert.Equal(t, float64(0), prediction.AnomalyScore)
		// 兜底时平均用电取实测值本身，偏差为零
		assert.Equal(t, float64(250), prediction.AverageUsage)
		assert.Equal(t, float64(0), prediction.Deviation)
	})

	t.Run("连接失败返回兜底值", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close() // 先关掉服务器再请求

		svc := newTestMLService(url)
		prediction := svc.Predict(context.Background(), 2, 100)

		require.NotNil(t, prediction)
		assert.True(t, prediction.Degraded)
		assert.Equal(t, float64(100), prediction.AverageUsage)
	})

	t.Run("响应不可解析返回兜底值", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		}))
		defer server.Close()

		svc := newTestMLService(server.URL)
		prediction := svc.Predict(context.Background(), 3, 42)

		require.NotNil(t, prediction)
		assert.True(t, prediction.Degraded)
		assert.Equal(t, float64(42), prediction.AverageUsage)
	})
}
