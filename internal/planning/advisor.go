package planning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Advisor 外部规划服务能力抽象。
// Propose 返回 nil 表示没有可用建议，调用方据此走贪心兜底。
type Advisor interface {
	Propose(ctx context.Context, req *AdvisorRequest) *Advice
}

// AdvisorObjective 规划目标
type AdvisorObjective struct {
	MaximizeCredits bool    `json:"maximizeCredits"`
	BalanceWeight   float64 `json:"balanceWeight"`
}

// AdvisorCourse 提交给外部服务的可选课程
type AdvisorCourse struct {
	Code           string `json:"code"`
	CreditHours    int    `json:"creditHours"`
	HasTheoretical bool   `json:"hasTheoretical"`
	HasPractical   bool   `json:"hasPractical"`
}

// AdvisorRequest 外部规划请求体
type AdvisorRequest struct {
	StudentID        string             `json:"studentId"`
	RequestedCredits int                `json:"requestedCredits"`
	Objective        AdvisorObjective   `json:"objective"`
	EligibleCourses  []AdvisorCourse    `json:"eligibleCourses"`
	Schedule         []ScheduledSection `json:"schedule"`
}

// Advice 外部规划响应
type Advice struct {
	SelectedCourses []CandidateAssignment `json:"selectedCourses,omitempty"`
	Rationale       *string               `json:"rationale,omitempty"`
	Score           *float64              `json:"score,omitempty"`
}

// NopAdvisor 未配置外部服务时使用，从不给出建议
type NopAdvisor struct{}

// Propose 实现 Advisor
func (NopAdvisor) Propose(context.Context, *AdvisorRequest) *Advice { return nil }

// maxAdviceBytes 外部响应体上限
const maxAdviceBytes = 4 << 20

// HTTPAdvisor 通过单次 POST 调用外部规划工作流。
// 任何失败（网络、状态码、解析）只记录日志并返回 nil，不重试。
type HTTPAdvisor struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPAdvisor 创建 HTTPAdvisor；timeout 为 0 时不设置客户端超时，仅依赖 ctx
func NewHTTPAdvisor(url string, timeout time.Duration, logger *zap.Logger) *HTTPAdvisor {
	return &HTTPAdvisor{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// NewAdvisor 根据配置选择实现：url 为空返回 NopAdvisor
func NewAdvisor(url string, timeout time.Duration, logger *zap.Logger) Advisor {
	if url == "" {
		return NopAdvisor{}
	}
	return NewHTTPAdvisor(url, timeout, logger)
}

// Propose 实现 Advisor
func (a *HTTPAdvisor) Propose(ctx context.Context, req *AdvisorRequest) *Advice {
	advice, err := a.call(ctx, req)
	if err != nil {
		a.logger.Warn("外部规划服务调用失败，改用兜底方案",
			zap.String("student_id", req.StudentID),
			zap.String("url", a.url),
			zap.Error(err),
		)
		return nil
	}
	return advice
}

func (a *HTTPAdvisor) call(ctx context.Context, req *AdvisorRequest) (*Advice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("非成功状态码: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAdviceBytes))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("响应体为空")
	}

	var advice Advice
	if err := json.Unmarshal(raw, &advice); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	return &advice, nil
}
