package core

import "context"

// Store 是存储的领域接口：领域层定义契约，基础设施层（store 包）实现。
//
// 引擎用它承载三类数据：
//   - 热门榜单：离线算好的 top-rated 列表（有序集合）
//   - 商品元数据：Name / Brand / ImageURL 等（哈希）
//   - 最近搜索：会话历史持久化（普通 KV）
type Store interface {
	// Name 返回存储后端名称，用于日志定位。
	Name() string

	// Get 读取 key；不存在时返回 ErrStoreNotFound。
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入 key；ttl 单位秒，省略或 <= 0 表示不过期。
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除 key 及其关联结构。
	Delete(ctx context.Context, key string) error

	// Close 释放连接资源。
	Close() error
}

// KeyValueStore 在 Store 之上扩展有序集合与哈希，
// 分别服务热门 TopN 和商品元数据两类读路径。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合写入成员分数。
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序取 [start, stop] 区间成员；stop 为 -1 表示到末尾。
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// HGet 读取哈希字段；不存在时返回 ErrStoreNotFound。
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入哈希字段。
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个哈希。
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

var (
	// ErrStoreNotFound 表示 key（或哈希字段）不存在。
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "key not found")

	// ErrStoreNotSupported 表示后端不支持该操作。
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "operation not supported")
)

// IsStoreNotFound 检查错误是否为"存储中无此 key"。
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
