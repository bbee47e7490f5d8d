package services

import (
	"context"
	"testing"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustTime 按 "15:04" 构造一个当日时间点
func mustTime(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return parsed
}

func TestIsAfterHours(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		current string
		want    bool
	}{
		// 普通时段 09:00 - 17:00
		{"普通时段-开工前", "09:00", "17:00", "08:59", true},
		{"普通时段-开工边界", "09:00", "17:00", "09:00", false},
		{"普通时段-工作中", "09:00", "17:00", "12:30", false},
		{"普通时段-收工边界", "09:00", "17:00", "17:00", false},
		{"普通时段-收工后", "09:00", "17:00", "17:01", true},
		{"普通时段-午夜", "09:00", "17:00", "00:00", true},

		// 跨夜时段 22:00 - 06:00：白天算下班
		{"跨夜时段-清晨", "22:00", "06:00", "07:00", true},
		{"跨夜时段-傍晚", "22:00", "06:00", "21:00", true},
		{"跨夜时段-深夜工作中", "22:00", "06:00", "23:00", false},
		{"跨夜时段-凌晨工作中", "22:00", "06:00", "03:00", false},
		{"跨夜时段-开工边界", "22:00", "06:00", "22:00", false},
		{"跨夜时段-收工边界", "22:00", "06:00", "06:00", false},

		// 起止相同视为全天工作
		{"全天工作-任意时刻", "08:00", "08:00", "03:00", false},
		{"全天工作-边界时刻", "08:00", "08:00", "08:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAfterHours(tt.start, tt.end, mustTime(t, tt.current))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindCombinations(t *testing.T) {
	t.Run("精确匹配高于松散匹配", func(t *testing.T) {
		devices := []models.Device{
			{BaseModel: models.BaseModel{ID: 1}, Name: "灯A", Watt: 10, UsageProbability: 0.8},
			{BaseModel: models.BaseModel{ID: 2}, Name: "灯B", Watt: 10, UsageProbability: 0.8},
			{BaseModel: models.BaseModel{ID: 3}, Name: "风扇", Watt: 20, UsageProbability: 0.5},
		}

		result := FindCombinations(devices, 20, 2)
		require.Len(t, result, 2)

		// 两盏灯的组合：拟合精度1.0，遗忘概率均值0.8 -> 92
		assert.Equal(t, []uint{1, 2}, result[0].DeviceIDs)
		assert.Equal(t, float64(20), result[0].TotalWattage)
		assert.Equal(t, 92, result[0].Confidence)

		// 单独风扇：拟合精度1.0，遗忘概率0.5 -> 80
		assert.Equal(t, []uint{3}, result[1].DeviceIDs)
		assert.Equal(t, 80, result[1].Confidence)
	})

	t.Run("容差边界为闭区间", func(t *testing.T) {
		devices := []models.Device{
			{BaseModel: models.BaseModel{ID: 1}, Watt: 22, UsageProbability: 0.5},
		}

		result := FindCombinations(devices, 20, 2)
		require.Len(t, result, 1)
		assert.Equal(t, float64(22), result[0].TotalWattage)
	})

	t.Run("超出容差无候选", func(t *testing.T) {
		devices := []models.Device{
			{BaseModel: models.BaseModel{ID: 1}, Watt: 100, UsageProbability: 0.9},
		}

		result := FindCombinations(devices, 20, 2)
		assert.Empty(t, result)
	})

	t.Run("空组合不解释非零负载", func(t *testing.T) {
		// 零功率设备不能拼出正的总功率
		devices := []models.Device{
			{BaseModel: models.BaseModel{ID: 1}, Watt: 0, UsageProbability: 0.5},
		}

		result := FindCombinations(devices, 1, 2)
		assert.Empty(t, result)
	})

	t.Run("最多返回三个候选", func(t *testing.T) {
		devices := []models.Device{
			{BaseModel: models.BaseModel{ID: 1}, Watt: 20, UsageProbability: 0.5},
			{BaseModel: models.BaseModel{ID: 2}, Watt: 20, UsageProbability: 0.5},
			{BaseModel: models.BaseModel{ID: 3}, Watt: 20, UsageProbability: 0.5},
			{BaseModel: models.BaseModel{ID: 4}, Watt: 20, UsageProbability: 0.5},
			{BaseModel: models.BaseModel{ID: 5}, Watt: 20, UsageProbability: 0.5},
		}

		result := FindCombinations(devices, 20, 0)
		assert.Len(t, result, 3)
	})

	t.Run("无设备返回空", func(t *testing.T) {
		result := FindCombinations(nil, 20, 2)
		assert.Empty(t, result)
	})
}

func TestCombineConfidence(t *testing.T) {
	tests := []struct {
		name     string
		hasMatch bool
		mlScore  float64
		want     int
	}{
		{"匹配且模型满分", true, 100, 88},
		{"仅结构匹配", true, 0, 48},
		{"仅模型满分", false, 100, 40},
		{"全无信号", false, 0, 0},
		{"匹配且模型中等分", true, 50, 68},
		{"越界分数被截断", false, 1000, 100},
		{"负分被截断", false, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombineConfidence(tt.hasMatch, tt.mlScore))
		})
	}
}

// recordingMLService 记录是否被调用的确定性评分桩
type recordingMLService struct {
	called     bool
	prediction *MLPrediction
}

func (s *recordingMLService) Predict(ctx context.Context, roomID uint, watt float64) *MLPrediction {
	s.called = true
	if s.prediction != nil {
		return s.prediction
	}
	return &MLPrediction{AverageUsage: watt}
}

// fakeAnalysisStore 是内存版的分析持久层，记录全部写入
type fakeAnalysisStore struct {
	devices []models.Device
	alerts  []*models.Alert
	reports []*models.ReportLog
}

func (f *fakeAnalysisStore) ListRoomDevices(roomID uint) ([]models.Device, error) {
	return f.devices, nil
}

func (f *fakeAnalysisStore) FindDevicesByID(ids []uint) ([]models.Device, error) {
	var out []models.Device
	for _, d := range f.devices {
		for _, id := range ids {
			if d.ID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeAnalysisStore) CreateAlert(alert *models.Alert) error {
	alert.ID = uint(len(f.alerts) + 1)
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAnalysisStore) CreateReport(report *models.ReportLog) error {
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeAnalysisStore) GetPopulatedAlert(id uint) (*models.Alert, error) {
	for _, a := range f.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAlertNotFound
}

// newTestRoom 构造一个 09:00-17:00 工作、待机阈值 5W 的房间
func newTestRoom() *models.Room {
	return &models.Room{
		BaseModel:            models.BaseModel{ID: 7},
		Name:                 "机房201",
		WorkingHoursStart:    "09:00",
		WorkingHoursEnd:      "17:00",
		StandbyThresholdWatt: 5,
	}
}

func newTestConfig() *config.Config {
	return &config.Config{
		AnalysisToleranceWatt:    2,
		AlertConfidenceThreshold: 40,
		EnergyTariff:             0.15,
		CarbonFactor:             0.85,
	}
}

func TestAnalyzeReadingSuppression(t *testing.T) {
	t.Run("上班时段不分析也不调用评分服务", func(t *testing.T) {
		ml := &recordingMLService{}
		store := &fakeAnalysisStore{}
		svc := &AnalysisService{Store: store, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 500, mustTime(t, "12:00"))
		require.NoError(t, err)
		assert.Equal(t, AnalysisStatusNormal, result.Status)
		assert.Equal(t, ReasonWithinHours, result.Reason)
		assert.False(t, ml.called)
		assert.Nil(t, result.Alert)
		assert.Empty(t, store.alerts)
	})

	t.Run("全天工作窗口任何时刻都抑制", func(t *testing.T) {
		ml := &recordingMLService{}
		svc := &AnalysisService{Store: &fakeAnalysisStore{}, Config: newTestConfig(), ML: ml}

		room := newTestRoom()
		room.WorkingHoursStart = "09:00"
		room.WorkingHoursEnd = "09:00"

		result, err := svc.AnalyzeReading(context.Background(), room, 500, mustTime(t, "03:00"))
		require.NoError(t, err)
		assert.Equal(t, ReasonWithinHours, result.Reason)
		assert.False(t, ml.called)
	})

	t.Run("低于待机阈值直接抑制", func(t *testing.T) {
		ml := &recordingMLService{}
		store := &fakeAnalysisStore{}
		svc := &AnalysisService{Store: store, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 3, mustTime(t, "22:00"))
		require.NoError(t, err)
		assert.Equal(t, AnalysisStatusNormal, result.Status)
		assert.Equal(t, ReasonBelowThreshold, result.Reason)
		assert.False(t, ml.called)
		assert.Empty(t, store.alerts)
	})

	t.Run("阈值边界上的读数同样抑制", func(t *testing.T) {
		ml := &recordingMLService{}
		svc := &AnalysisService{Store: &fakeAnalysisStore{}, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 5, mustTime(t, "22:00"))
		require.NoError(t, err)
		assert.Equal(t, ReasonBelowThreshold, result.Reason)
		assert.False(t, ml.called)
	})

	t.Run("按读数自身时间戳门控", func(t *testing.T) {
		// 同一条数据，补报成上班时刻就被抑制，下班时刻则进入分析
		ml := &recordingMLService{}
		svc := &AnalysisService{Store: &fakeAnalysisStore{}, Config: newTestConfig(), ML: ml}

		within, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 500, mustTime(t, "10:00"))
		require.NoError(t, err)
		assert.Equal(t, ReasonWithinHours, within.Reason)
		assert.False(t, ml.called)

		after, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 500, mustTime(t, "20:00"))
		require.NoError(t, err)
		assert.NotEqual(t, ReasonWithinHours, after.Reason)
		assert.True(t, ml.called)
	})
}

func TestAnalyzeReadingOutcomes(t *testing.T) {
	t.Run("无匹配且模型无异常", func(t *testing.T) {
		ml := &recordingMLService{prediction: &MLPrediction{IsAnomaly: false, AnomalyScore: 0}}
		store := &fakeAnalysisStore{
			devices: []models.Device{
				{BaseModel: models.BaseModel{ID: 1}, Watt: 1000, UsageProbability: 0.5},
			},
		}
		svc := &AnalysisService{Store: store, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 100, mustTime(t, "22:00"))
		require.NoError(t, err)
		assert.Equal(t, AnalysisStatusAnomaly, result.Status)
		assert.Equal(t, ReasonNoMatchFound, result.Reason)
		assert.True(t, ml.called)
		assert.Nil(t, result.Alert)
		assert.Empty(t, store.alerts)
		assert.Empty(t, store.reports)
	})

	t.Run("弱信号不落库不核算", func(t *testing.T) {
		// 无结构匹配但模型给出中等异常分：0.6*0 + 0.4*50 = 20 < 40
		ml := &recordingMLService{prediction: &MLPrediction{IsAnomaly: true, AnomalyScore: 50}}
		store := &fakeAnalysisStore{
			devices: []models.Device{
				{BaseModel: models.BaseModel{ID: 1}, Watt: 1000, UsageProbability: 0.5},
			},
		}
		svc := &AnalysisService{Store: store, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 100, mustTime(t, "22:00"))
		require.NoError(t, err)
		assert.Equal(t, AnalysisStatusAnomaly, result.Status)
		assert.Equal(t, ReasonSubThreshold, result.Reason)
		assert.Equal(t, 20, result.Confidence)
		assert.Nil(t, result.Alert)
		// 中性结论不得产生任何持久化副作用
		assert.Empty(t, store.alerts)
		assert.Empty(t, store.reports)
	})

	t.Run("匹配达标生成告警与核算记录", func(t *testing.T) {
		ml := &recordingMLService{prediction: &MLPrediction{IsAnomaly: true, AnomalyScore: 90, AverageUsage: 30}}
		store := &fakeAnalysisStore{
			devices: []models.Device{
				{BaseModel: models.BaseModel{ID: 1}, Name: "服务器", Watt: 200, UsageProbability: 0.9},
				{BaseModel: models.BaseModel{ID: 2}, Name: "饮水机", Watt: 900, UsageProbability: 0.3},
			},
		}
		svc := &AnalysisService{Store: store, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 200, mustTime(t, "22:00"))
		require.NoError(t, err)
		assert.Equal(t, AnalysisStatusAnomaly, result.Status)
		assert.Empty(t, result.Reason)
		// 0.6*80 + 0.4*90 = 84
		assert.Equal(t, 84, result.Confidence)

		require.NotNil(t, result.Alert)
		assert.Equal(t, uint(7), result.Alert.RoomID)
		assert.Equal(t, float64(200), result.Alert.MeasuredWatt)
		assert.Equal(t, models.AlertStatusActive, result.Alert.Status)
		assert.Equal(t, 84, result.Alert.Confidence)
		assert.Equal(t, float64(90), result.Alert.MLScore)

		// 嫌疑设备取排名第一的组合
		require.Len(t, result.Alert.SuspectedDevices, 1)
		assert.Equal(t, uint(1), result.Alert.SuspectedDevices[0].ID)

		// 核算：200W 持续一小时 => 0.2kWh
		require.Len(t, store.reports, 1)
		report := store.reports[0]
		assert.Equal(t, uint(7), report.RoomID)
		assert.InDelta(t, 0.2, report.WastedEnergy, 1e-9)
		assert.InDelta(t, 0.03, report.Cost, 1e-9)
		assert.InDelta(t, 0.17, report.CarbonEmission, 1e-9)
	})

	t.Run("仅模型标记时嫌疑设备为空", func(t *testing.T) {
		// 无结构匹配但模型异常分够高：0.6*0 + 0.4*100 = 40 >= 40
		ml := &recordingMLService{prediction: &MLPrediction{IsAnomaly: true, AnomalyScore: 100}}
		store := &fakeAnalysisStore{
			devices: []models.Device{
				{BaseModel: models.BaseModel{ID: 1}, Watt: 1000, UsageProbability: 0.5},
			},
		}
		svc := &AnalysisService{Store: store, Config: newTestConfig(), ML: ml}

		result, err := svc.AnalyzeReading(context.Background(), newTestRoom(), 100, mustTime(t, "22:00"))
		require.NoError(t, err)
		require.NotNil(t, result.Alert)
		assert.Equal(t, 40, result.Confidence)
		assert.Empty(t, result.Alert.SuspectedDevices)
		require.Len(t, store.alerts, 1)
	})
}
