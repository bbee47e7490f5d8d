package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// 分析结论状态
const (
	AnalysisStatusNormal  = "normal"  // 未进入分析或被抑制
	AnalysisStatusAnomaly = "anomaly" // 进入分析并确认异常路径
)

// 分析结论原因
const (
	ReasonWithinHours    = "within_hours"    // 处于上班时段，不做分析
	ReasonBelowThreshold = "below_threshold" // 低于待机阈值，不做分析
	ReasonNoMatchFound   = "no_match_found"  // 无结构匹配且模型未标记异常
	ReasonSubThreshold   = "sub_threshold"   // 异常信号弱，综合置信度未达告警线
)

// CandidateCombination 表示一组能近似解释实测负载的设备组合。
// 仅作为分析过程的派生值存在，不单独持久化。
type CandidateCombination struct {
	DeviceIDs    []uint  `json:"device_ids"`
	TotalWattage float64 `json:"total_wattage"`
	Confidence   int     `json:"confidence"` // [0,100]
}

// AnalysisResult 表示一次读数分析的最终结论
type AnalysisResult struct {
	Status       string                 `json:"status"`
	Reason       string                 `json:"reason,omitempty"`
	Combinations []CandidateCombination `json:"combinations,omitempty"`
	Confidence   int                    `json:"confidence,omitempty"`
	Alert        *models.Alert          `json:"alert,omitempty"`
}

// InterfaceAnalysisService 定义负载分析服务接口
type InterfaceAnalysisService interface {
	AnalyzeReading(ctx context.Context, room *models.Room, measuredWatt float64, at time.Time) (*AnalysisResult, error)
}

// InterfaceAnalysisStore 隔离分析流水线的持久化操作。
// 生产实现走 GORM，测试里可以换成内存桩。
type InterfaceAnalysisStore interface {
	ListRoomDevices(roomID uint) ([]models.Device, error)
	FindDevicesByID(ids []uint) ([]models.Device, error)
	CreateAlert(alert *models.Alert) error
	CreateReport(report *models.ReportLog) error
	GetPopulatedAlert(id uint) (*models.Alert, error)
}

// analysisStore 是 InterfaceAnalysisStore 的 GORM 实现
type analysisStore struct {
	db *gorm.DB
}

func (s *analysisStore) ListRoomDevices(roomID uint) ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Where("room_id = ?", roomID).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *analysisStore) FindDevicesByID(ids []uint) ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Where("id IN ?", ids).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *analysisStore) CreateAlert(alert *models.Alert) error {
	return s.db.Create(alert).Error
}

func (s *analysisStore) CreateReport(report *models.ReportLog) error {
	return s.db.Create(report).Error
}

func (s *analysisStore) GetPopulatedAlert(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.Preload("Room").Preload("SuspectedDevices").First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// AnalysisService 提供下班时段负载异常分析
type AnalysisService struct {
	Store  InterfaceAnalysisStore
	Config *config.Config
	ML     InterfaceMLService
	MQTT   InterfaceMQTTService
}

// NewAnalysisService 创建一个新的负载分析服务
func NewAnalysisService(db *gorm.DB, cfg *config.Config, ml InterfaceMLService, mqtt InterfaceMQTTService) InterfaceAnalysisService {
	return &AnalysisService{
		Store:  &analysisStore{db: db},
		Config: cfg,
		ML:     ml,
		MQTT:   mqtt,
	}
}

// IsAfterHours 判断时间点是否落在工作时段之外。
// start/end 为 "HH:mm" 格式的当日时间，按字符串比较：
//   - start == end 视为全天工作，任何时刻都不算下班；
//   - start < end 为普通时段，早于 start 或晚于 end 算下班（边界算上班）；
//   - start > end 为跨夜时段（如 22:00-06:00），严格处于 end 与 start
//     之间的白天时刻算下班。
// 纯函数，无任何全局开关。
func IsAfterHours(start, end string, t time.Time) bool {
	current := t.Format("15:04")

	if start == end {
		// 全天工作窗口
		return false
	}

	if start < end {
		// 普通时段，如 09:00 - 17:00
		return current < start || current > end
	}

	// 跨夜时段，如 22:00 - 06:00
	return current < start && current > end
}

// matchFrame 是组合搜索中的一个待展开节点：
// 前 index 个设备已做过取舍，path/sum/probSum 描述已选子集。
type matchFrame struct {
	index   int
	path    []uint
	sum     float64
	probSum float64
}

// FindCombinations 在房间设备清单中枚举额定功率之和接近目标负载的
// 设备组合，按置信度从高到低返回前三个。
//
// 采用显式栈的深度优先枚举（对每个设备做"选/不选"二叉展开），当部分
// 和超过 target+tolerance 时整支剪掉。设备功率非负，路径上的和单调
// 不减，该剪枝既正确也不漏解。叶子上仅当 |sum-target| <= tolerance
// 且 sum > 0 时记为候选（空组合解释不了非零负载）。
//
// 最坏情况是 2^n 枚举。这里刻意按房间级设备数（几十以内）设计，
// 更大规模需要上限截断或近似算法，属于另一个功能的事。
func FindCombinations(devices []models.Device, targetLoad, tolerance float64) []CandidateCombination {
	var result []CandidateCombination

	// 后进先出，先压"不选"再压"选"，保证与先选后弃的递归同序展开
	stack := []matchFrame{{index: 0}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// 剪枝：部分和已超出容差上界，子树内不可能再有解
		if frame.sum > targetLoad+tolerance {
			continue
		}

		if frame.index == len(devices) {
			if math.Abs(frame.sum-targetLoad) <= tolerance && frame.sum > 0 {
				result = append(result, scoreCombination(frame, targetLoad))
			}
			continue
		}

		d := devices[frame.index]

		// 不选当前设备
		stack = append(stack, matchFrame{
			index:   frame.index + 1,
			path:    frame.path,
			sum:     frame.sum,
			probSum: frame.probSum,
		})

		// 选当前设备，路径按不可变处理，复制后追加
		included := make([]uint, len(frame.path), len(frame.path)+1)
		copy(included, frame.path)
		included = append(included, d.ID)

		stack = append(stack, matchFrame{
			index:   frame.index + 1,
			path:    included,
			sum:     frame.sum + d.Watt,
			probSum: frame.probSum + d.UsageProbability,
		})
	}

	// 按置信度降序，同分保持枚举顺序，结果可复现
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})

	if len(result) > 3 {
		result = result[:3]
	}
	return result
}

// scoreCombination 计算单个候选组合的置信度：
// 功率拟合精度占 60%，设备遗忘概率均值占 40%。
func scoreCombination(frame matchFrame, targetLoad float64) CandidateCombination {
	accuracy := 1 - math.Abs(frame.sum-targetLoad)/math.Max(targetLoad, 1)
	if accuracy < 0 {
		accuracy = 0
	} else if accuracy > 1 {
		accuracy = 1
	}

	avgProb := frame.probSum / float64(len(frame.path))

	confidence := int(math.Round((accuracy*0.6 + avgProb*0.4) * 100))

	return CandidateCombination{
		DeviceIDs:    frame.path,
		TotalWattage: frame.sum,
		Confidence:   clampConfidence(confidence),
	}
}

// CombineConfidence 把结构匹配结果和外部异常分合成综合置信度。
// 有任一候选组合时结构分记 80，否则记 0；结构分占 60%，异常分占 40%。
func CombineConfidence(hasMatch bool, mlScore float64) int {
	matchScore := 0.0
	if hasMatch {
		matchScore = 80
	}
	return clampConfidence(int(math.Round(matchScore*0.6 + mlScore*0.4)))
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AnalyzeReading 对一条已入库读数执行完整分析流水线：
// 时段门控 -> 阈值门控 -> 组合匹配 + ML 评分 -> 置信度合成 -> 告警落库。
// 时段门控以读数自身的时间戳 at 为准，补报的历史读数按当时的时段判定，
// 与落库数据一致。上班时段与低负载直接抑制，且不再调用 ML 服务
// （结果无论如何不会告警）。
func (s *AnalysisService) AnalyzeReading(ctx context.Context, room *models.Room, measuredWatt float64, at time.Time) (*AnalysisResult, error) {
	if !IsAfterHours(room.WorkingHoursStart, room.WorkingHoursEnd, at) {
		return &AnalysisResult{Status: AnalysisStatusNormal, Reason: ReasonWithinHours}, nil
	}

	if measuredWatt <= room.StandbyThresholdWatt {
		return &AnalysisResult{Status: AnalysisStatusNormal, Reason: ReasonBelowThreshold}, nil
	}

	// 设备清单一次性读取，作为本次分析的快照
	devices, err := s.Store.ListRoomDevices(room.ID)
	if err != nil {
		return nil, err
	}

	combinations := FindCombinations(devices, measuredWatt, s.Config.AnalysisToleranceWatt)

	// ML 服务故障在 Predict 内部降级，这里拿到的永远是可用结果
	prediction := s.ML.Predict(ctx, room.ID, measuredWatt)

	if len(combinations) == 0 && !prediction.IsAnomaly {
		return &AnalysisResult{Status: AnalysisStatusAnomaly, Reason: ReasonNoMatchFound}, nil
	}

	confidence := CombineConfidence(len(combinations) > 0, prediction.AnomalyScore)

	if confidence < s.Config.AlertConfidenceThreshold {
		// 信号太弱：不建告警也不记浪费，与 no_match 区分开
		return &AnalysisResult{
			Status:       AnalysisStatusAnomaly,
			Reason:       ReasonSubThreshold,
			Combinations: combinations,
			Confidence:   confidence,
		}, nil
	}

	alert, err := s.createAlert(room, measuredWatt, combinations, prediction, confidence)
	if err != nil {
		// 读数已经落库，告警写失败向上抛由调用方决定重试
		return nil, err
	}

	return &AnalysisResult{
		Status:       AnalysisStatusAnomaly,
		Combinations: combinations,
		Confidence:   confidence,
		Alert:        alert,
	}, nil
}

// createAlert 持久化告警与浪费核算记录，并推送通知
func (s *AnalysisService) createAlert(room *models.Room, measuredWatt float64, combinations []CandidateCombination, prediction *MLPrediction, confidence int) (*models.Alert, error) {
	alert := &models.Alert{
		RoomID:       room.ID,
		MeasuredWatt: measuredWatt,
		Status:       models.AlertStatusActive,
		MLScore:      prediction.AnomalyScore,
		MLAverage:    prediction.AverageUsage,
		Confidence:   confidence,
	}

	// 嫌疑设备取排名第一的组合；仅靠 ML 标记时允许为空
	if len(combinations) > 0 {
		suspected, err := s.Store.FindDevicesByID(combinations[0].DeviceIDs)
		if err != nil {
			return nil, err
		}
		alert.SuspectedDevices = suspected
	}

	if err := s.Store.CreateAlert(alert); err != nil {
		return nil, err
	}

	// 浪费核算：按该负载持续一小时估算
	wastedEnergy := measuredWatt / 1000
	report := &models.ReportLog{
		RoomID:         room.ID,
		WastedEnergy:   wastedEnergy,
		Cost:           wastedEnergy * s.Config.EnergyTariff,
		CarbonEmission: wastedEnergy * s.Config.CarbonFactor,
	}
	if err := s.Store.CreateReport(report); err != nil {
		return nil, err
	}

	// 重新加载带房间与设备详情的告警用于通知和响应
	populated, err := s.Store.GetPopulatedAlert(alert.ID)
	if err != nil {
		return nil, err
	}

	// 通知尽力而为，失败只记日志
	if s.MQTT != nil {
		if err := s.MQTT.PublishAlert(populated); err != nil {
			config.Warning("推送告警通知失败: %v", err)
		}
	}

	return populated, nil
}
