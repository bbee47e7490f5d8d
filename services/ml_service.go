package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
)

// MLPrediction 表示外部异常评分服务对一次读数的判定
type MLPrediction struct {
	IsAnomaly    bool    `json:"isAnomaly"`
	AnomalyScore float64 `json:"anomalyScore"` // [0,100]
	AverageUsage float64 `json:"averageUsage"`
	Deviation    float64 `json:"deviation"`
	Degraded     bool    `json:"degraded,omitempty"` // 服务不可用时以兜底值返回
}

// InterfaceMLService 定义异常评分服务接口。
// 具体实现是一次带超时的远程调用；测试中可用确定性桩替换。
type InterfaceMLService interface {
	Predict(ctx context.Context, roomID uint, watt float64) *MLPrediction
}

// MLService 通过 HTTP 调用 Python 评分边车
type MLService struct {
	Config *config.Config
	Client *http.Client
}

// NewMLService 创建一个新的异常评分服务客户端
func NewMLService(cfg *config.Config) InterfaceMLService {
	return &MLService{
		Config: cfg,
		Client: &http.Client{
			Timeout: cfg.GetMLTimeout(),
		},
	}
}

// mlRequest 是 /predict 的请求体
type mlRequest struct {
	RoomID uint    `json:"roomId"`
	Watt   float64 `json:"watt"`
}

// Predict 请求评分服务。任何失败（超时、连接错误、非 200、响应不可解析）
// 都不向调用方抛错，而是返回安全兜底值并标记 Degraded。评分服务故障
// 只降低置信度质量，不能阻断读数接入和结构匹配告警。
func (s *MLService) Predict(ctx context.Context, roomID uint, watt float64) *MLPrediction {
	fallback := &MLPrediction{
		IsAnomaly:    false,
		AnomalyScore: 0,
		AverageUsage: watt,
		Deviation:    0,
		Degraded:     true,
	}

	body, err := json.Marshal(mlRequest{RoomID: roomID, Watt: watt})
	if err != nil {
		config.Warning("ML 请求编码失败: %v", err)
		return fallback
	}

	url := fmt.Sprintf("%s/predict", s.Config.MLServiceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		config.Warning("ML 请求构造失败: %v", err)
		return fallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		config.Warning("ML 服务调用失败，使用兜底评分: %v", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.Warning("ML 服务返回状态码 %d，使用兜底评分", resp.StatusCode)
		return fallback
	}

	var prediction MLPrediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		config.Warning("ML 响应解析失败，使用兜底评分: %v", err)
		return fallback
	}

	return &prediction
}
