package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// 主题常量
const (
	// 新告警通知主题
	TopicAlertNew = "power_alert/new"

	// 新读数通知主题
	TopicReadingNew = "power_alert/reading"

	// 系统消息主题
	TopicSystemMessage = "power_alert/system"
)

// MQTTMessage MQTT消息基础结构
type MQTTMessage struct {
	Type      string                 `json:"type"`
	EventID   string                 `json:"event_id"`
	Timestamp int64                  `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

// InterfaceMQTTService 定义告警通知服务接口
type InterfaceMQTTService interface {
	Connect() error
	Disconnect()
	PublishAlert(alert *models.Alert) error
	PublishReading(roomID uint, watt float64, timestamp time.Time) error
	PublishSystemMessage(messageType string, payload map[string]interface{}) error
}

// MQTTService 通过 MQTT 向前端/订阅方推送事件，发布尽力而为
type MQTTService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 保护消息发布
}

// NewMQTTService 创建一个新的MQTT通知服务
func NewMQTTService(cfg *config.Config) InterfaceMQTTService {
	return &MQTTService{
		Config: cfg,
	}
}

// Connect 连接MQTT服务器
func (s *MQTTService) Connect() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBroker).
		SetClientID(fmt.Sprintf("%s-%s", s.Config.MQTTClientID, uuid.NewString()[:8])).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	opts.OnConnect = func(client mqtt.Client) {
		s.setConnected(true)
		config.Info("MQTT已连接: %s", s.Config.MQTTBroker)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		s.setConnected(false)
		config.Warning("MQTT连接断开: %v", err)
	}

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("连接MQTT服务器超时")
	}
	if token.Error() != nil {
		return fmt.Errorf("连接MQTT服务器失败: %w", token.Error())
	}

	s.setConnected(true)
	return nil
}

// Disconnect 断开MQTT连接
func (s *MQTTService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

func (s *MQTTService) setConnected(connected bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.IsConnected = connected
}

func (s *MQTTService) isConnected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.IsConnected
}

// publish 序列化并发布一条消息
func (s *MQTTService) publish(topic, messageType string, payload map[string]interface{}) error {
	if s.Client == nil || !s.isConnected() {
		return fmt.Errorf("MQTT未连接，消息未发布: %s", topic)
	}

	message := MQTTMessage{
		Type:      messageType,
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化MQTT消息失败: %w", err)
	}

	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	token := s.Client.Publish(topic, 1, false, data)
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布MQTT消息超时: %s", topic)
	}
	return token.Error()
}

// PublishAlert 推送一条新告警，携带房间与嫌疑设备详情
func (s *MQTTService) PublishAlert(alert *models.Alert) error {
	return s.publish(TopicAlertNew, "new_alert", map[string]interface{}{
		"alert": alert,
	})
}

// PublishReading 推送一条新读数
func (s *MQTTService) PublishReading(roomID uint, watt float64, timestamp time.Time) error {
	return s.publish(TopicReadingNew, "new_reading", map[string]interface{}{
		"room_id":   roomID,
		"watt":      watt,
		"timestamp": timestamp,
	})
}

// PublishSystemMessage 推送系统级消息
func (s *MQTTService) PublishSystemMessage(messageType string, payload map[string]interface{}) error {
	return s.publish(TopicSystemMessage, messageType, payload)
}
