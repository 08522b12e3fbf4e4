// Package workflow implements the redact and restore handlers shared by the
// TUI and the command line. Handlers return outcomes carrying user-facing
// messages; callers decide how to show them.
package workflow

import (
	"context"

	"github.com/studiowebux/redactcli/internal/types"
)

// User-facing messages
const (
	MsgEmptyInput    = "错误: 输入文本不能为空"
	MsgNoCategory    = "错误: 请至少选择一个实体类型"
	MsgNoMapping     = "错误: 未找到实体映射。请先执行脱敏操作。"
	MsgUnreachable   = "无法连接到服务器，请检查网络或服务器状态"
	MsgProcessing    = "处理中..."
	msgErrorPrefix   = "错误: "
	msgRestorePrefix = "还原失败: "
)

// Kind classifies an outcome
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindService
	KindTransport
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindValidation:
		return "validation"
	case KindService:
		return "service"
	case KindTransport:
		return "transport"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Requester sends a request to the redaction service
type Requester interface {
	Do(ctx context.Context, method, path string, body any) (*types.Response, error)
}

// StateStore holds the session state record
type StateStore interface {
	Save(ctx context.Context, state types.SessionState)
	Load(ctx context.Context) (*types.SessionState, bool)
}
