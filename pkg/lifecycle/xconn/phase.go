package xconn

import "strconv"

// Phase 连接阶段，互斥。
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseConnecting
	PhaseConnected
	PhaseClosing
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConnecting:
		return "connecting"
	case PhaseConnected:
		return "connected"
	case PhaseClosing:
		return "closing"
	case PhaseClosed:
		return "closed"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// CloseOutcome Close 的结果
type CloseOutcome int

const (
	// CloseSkipped 没有需要关闭的句柄：从未连接、已关闭或正在关闭。
	CloseSkipped CloseOutcome = iota
	// CloseCompleted 底层关闭已执行，错误（如有）随 Close 返回。
	CloseCompleted
)

func (o CloseOutcome) String() string {
	if o == CloseCompleted {
		return "completed"
	}
	return "skipped"
}
