package pixelheart

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time 写入超时时间
	writeWait = 10 * time.Second

	// Time pong超时时间
	pongWait = 60 * time.Second

	// Send 对应的ping 必须小于pong
	pingPeriod = (pongWait * 9) / 10

	// Maximum 对等端允许消息大小
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client 一个具体的 websocket 连接
type Client struct {
	hub *WsServer

	conn *websocket.Conn

	// 消息缓冲区，只由 hub 主循环关闭
	send chan []byte

	// UserID 和用户关联，匿名连接为空
	UserID string
	token  string

	mu     sync.RWMutex
	topics map[string]bool
}

func topicKey(table, event string) string {
	return table + ":" + event
}

func (c *Client) subscribe(table, event string) {
	c.mu.Lock()
	c.topics[topicKey(table, event)] = true
	c.mu.Unlock()
}

func (c *Client) unsubscribe(table, event string) {
	c.mu.Lock()
	delete(c.topics, topicKey(table, event))
	c.mu.Unlock()
}

func (c *Client) wants(ev message.ChangeEvent) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topics[topicKey(ev.Table, ev.Type)] || c.topics[topicKey(ev.Table, message.EventAny)]
}

// readPump 将消息从client (websocket 连接) 到hub管理。
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug().Err(err).Str("user_id", c.UserID).Msg("ws read failed")
			}
			break
		}
		c.hub.handleClientMessage(c, msg)
	}
}

// writePump 将消息从hub管理写到具体的client (websocket 连接)。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 每条一个 frame，客户端按 JSON 逐条解析
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.log.Debug().Err(err).Str("user_id", c.UserID).Msg("ws ping failed")
				return
			}
		}
	}
}

// outbound 定向消息：client 非空时只发给该连接，否则发给 userID 的连接
// （token 非空时只发给用该 token 建立的连接）；kick 为 true 时发完即断开
type outbound struct {
	client *Client
	userID string
	token  string
	data   []byte
	kick   bool
}

// WsServer 行变更推送。连接按表 + 事件类型订阅，只收到自己订阅的变更。
type WsServer struct {
	log zerolog.Logger

	clients map[*Client]bool
	// 用户ID ->该用户所有活跃的Websocket连接（支持多设备）
	userClients map[string][]*Client
	mu          sync.RWMutex

	broadcast  chan message.ChangeEvent
	direct     chan outbound
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
}

func NewWsServer(log zerolog.Logger) *WsServer {
	return &WsServer{
		log:         log,
		clients:     make(map[*Client]bool),
		userClients: make(map[string][]*Client),
		broadcast:   make(chan message.ChangeEvent, 64),
		direct:      make(chan outbound, 64),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (h *WsServer) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.drop(client)

		case ev := <-h.broadcast:
			data, err := json.Marshal(message.NewWsPush(ev))
			if err != nil {
				h.log.Warn().Err(err).Str("table", ev.Table).Msg("encode change event failed")
				continue
			}
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				if client.wants(ev) {
					targets = append(targets, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range targets {
				h.deliver(client, data)
			}

		case out := <-h.direct:
			if out.client != nil {
				h.mu.RLock()
				ok := h.clients[out.client]
				h.mu.RUnlock()
				if ok {
					h.deliver(out.client, out.data)
				}
				continue
			}
			h.mu.RLock()
			conns := append([]*Client(nil), h.userClients[out.userID]...)
			h.mu.RUnlock()
			for _, client := range conns {
				if out.token != "" && client.token != out.token {
					continue
				}
				h.deliver(client, out.data)
				if out.kick {
					// 缓冲里的消息会先写完再发 close frame
					h.drop(client)
				}
			}

		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			h.userClients = make(map[string][]*Client)
			h.mu.Unlock()
			return
		}
	}
}

// deliver 缓冲区满的连接直接踢掉，避免拖慢其他订阅者
func (h *WsServer) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.log.Warn().Str("user_id", client.UserID).Msg("ws client too slow, dropped")
		h.drop(client)
	}
}

// drop 只在主循环里调用
func (h *WsServer) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	conns := h.userClients[client.UserID]
	for i, c := range conns {
		if c == client {
			h.userClients[client.UserID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
}

func (h *WsServer) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// Stop 关闭全部连接并退出主循环，可重复调用
func (h *WsServer) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

// Publish 推送一条行变更给订阅了它的连接
func (h *WsServer) Publish(ev message.ChangeEvent) {
	select {
	case h.broadcast <- ev:
	case <-h.stop:
	}
}

// SignOutUser 通知用户的连接已登出并断开；token 为空表示该用户全部连接
func (h *WsServer) SignOutUser(userID, token string) {
	if userID == "" {
		return
	}
	data, err := json.Marshal(message.WsAuthPush{Type: message.WsTypeAuth, Event: cons.AuthSignedOut})
	if err != nil {
		return
	}
	select {
	case h.direct <- outbound{userID: userID, token: token, data: data, kick: true}:
	case <-h.stop:
	}
}

func (h *WsServer) reply(client *Client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case h.direct <- outbound{client: client, data: data}:
	case <-h.stop:
	}
}

// ClientCount 当前连接数
func (h *WsServer) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS 处理ws的请求；userID 由调用方鉴权后传入
func (h *WsServer) ServeWS(w http.ResponseWriter, r *http.Request, userID, token string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("ws upgrade failed")
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		UserID: userID,
		token:  token,
		topics: map[string]bool{},
	}
	select {
	case h.register <- client:
	case <-h.stop:
		_ = conn.Close()
		return
	}
	h.log.Debug().Str("user_id", userID).Msg("ws client registered")

	go client.writePump()
	go client.readPump()
}
