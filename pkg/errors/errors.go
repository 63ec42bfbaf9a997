package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ── 通用业务码 ──
// 模块业务码按 1xx01 分段：课程 11xxx、学期 12xxx、排课 13xxx、规划 14xxx、成绩 15xxx、导出 16xxx

const (
	CodeInvalidParams   = 10001
	CodeUnauthorized    = 10002
	CodeForbidden       = 10003
	CodeTooManyRequests = 10004
	CodeConflict        = 10005
	CodeInternal        = 50000
)
