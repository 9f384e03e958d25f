package pixelheart

import (
	"encoding/json"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
)

// 可订阅的表；照片的增删改随所属套图的 UPDATE 一起推送
var realtimeTables = map[string]bool{
	cons.TableChatMessage: true,
	cons.TableSets:        true,
	cons.TableComments:    true,
	cons.TableProfiles:    true,
}

var realtimeEvents = map[string]bool{
	cons.ChangeInsert: true,
	cons.ChangeUpdate: true,
	cons.ChangeDelete: true,
	message.EventAny:  true,
}

// handleClientMessage 上行只有订阅 / 取消订阅 / ping，每条都回一个 ack
func (h *WsServer) handleClientMessage(client *Client, msg []byte) {
	if client == nil {
		return
	}
	var req message.WsReq
	if err := json.Unmarshal(msg, &req); err != nil {
		h.reply(client, message.WsAck{Type: message.WsTypeError, Status: "bad_request", Message: "invalid message format"})
		return
	}

	switch req.Type {
	case message.WsTypePing:
		h.reply(client, message.WsAck{Type: message.WsTypeAck, PacketID: req.PacketID, Status: "pong"})

	case message.WsTypeSubscribe, message.WsTypeUnsubscribe:
		event := req.Event
		if event == "" {
			event = message.EventAny
		}
		if !realtimeTables[req.Table] || !realtimeEvents[event] {
			h.reply(client, message.WsAck{Type: message.WsTypeError, PacketID: req.PacketID, Status: "bad_request", Message: "unknown table or event"})
			return
		}
		if req.Type == message.WsTypeSubscribe {
			client.subscribe(req.Table, event)
			h.reply(client, message.WsAck{Type: message.WsTypeAck, PacketID: req.PacketID, Status: "subscribed"})
			return
		}
		client.unsubscribe(req.Table, event)
		h.reply(client, message.WsAck{Type: message.WsTypeAck, PacketID: req.PacketID, Status: "unsubscribed"})

	default:
		h.reply(client, message.WsAck{Type: message.WsTypeError, PacketID: req.PacketID, Status: "bad_request", Message: "unknown message type"})
	}
}
