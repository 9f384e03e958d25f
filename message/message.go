package message

import (
	"encoding/json"
	"time"
)

// ChangeEvent 行变更通知（Redis 频道 / WS 下行共用）
type ChangeEvent struct {
	Table           string          `json:"table"`            // 表名，见 cons.Table*
	Type            string          `json:"type"`             // INSERT/UPDATE/DELETE
	Record          json.RawMessage `json:"record,omitempty"` // 新行
	CommitTimestamp time.Time       `json:"commit_timestamp"`
}

// AuthEvent 鉴权状态变更（同一用户的其他会话据此感知远端登出）
type AuthEvent struct {
	Event  string `json:"event"` // cons.Auth*
	UserID string `json:"user_id"`
	Token  string `json:"token,omitempty"` // 受影响的 token，为空表示该用户全部 token
}

// WS 上行消息类型
const (
	WsTypeSubscribe   = "subscribe"
	WsTypeUnsubscribe = "unsubscribe"
	WsTypePing        = "ping"
)

// WS 下行消息类型
const (
	WsTypeChange = "change"
	WsTypeAck    = "ack"
	WsTypeError  = "error"
	WsTypeAuth   = "auth"
)

// EventAny 订阅某张表的全部事件
const EventAny = "*"

// WsReq 客户端上行：订阅 / 取消订阅某张表的某类事件
type WsReq struct {
	Type     string `json:"type"`
	Table    string `json:"table"`
	Event    string `json:"event"`
	PacketID string `json:"packet_id,omitempty"`
}

// WsAck 上行请求的回执
type WsAck struct {
	Type     string `json:"type"` // ack / error
	PacketID string `json:"packet_id,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// WsPush 下行：一条行变更，type 固定为 change，变更类型放在 event
type WsPush struct {
	Type            string          `json:"type"`
	Table           string          `json:"table"`
	Event           string          `json:"event"`
	Record          json.RawMessage `json:"record,omitempty"`
	CommitTimestamp time.Time       `json:"commit_timestamp"`
}

func NewWsPush(ev ChangeEvent) WsPush {
	return WsPush{
		Type:            WsTypeChange,
		Table:           ev.Table,
		Event:           ev.Type,
		Record:          ev.Record,
		CommitTimestamp: ev.CommitTimestamp,
	}
}

// WsAuthPush 下行：连接所用的登录态已失效，服务端随后断开
type WsAuthPush struct {
	Type  string `json:"type"` // auth
	Event string `json:"event"`
}
