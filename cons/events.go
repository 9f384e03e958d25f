package cons

// 数据表（实时订阅按表名 + 事件类型区分）
const (
	TableChatMessage = "chat_messages"
	TableSets        = "cosplay_sets"
	TableComments    = "comments"
	TableProfiles    = "profiles"
)

// 行变更事件类型
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

// 鉴权状态变更事件
const (
	AuthSignedIn       = "SIGNED_IN"
	AuthSignedOut      = "SIGNED_OUT"
	AuthTokenRefreshed = "TOKEN_REFRESHED"
)

// 对象存储分区
const (
	BucketAvatars       = "avatars"
	BucketCosplayImages = "cosplay_images"
)

// Redis key / channel 前缀
const (
	RedisTokenPrefix      = "px:token:"
	RedisUserTokensPrefix = "px:user_tokens:"
	RedisAuthChannel      = "px:auth:"
	RedisRealtimeChannel  = "px:realtime:"
)
