package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rushteam/shopkit/pkg/logutil"
)

// missingIDSentinel 是上游导出时用来表示缺失 ID 的哨兵值
// （int32 最小值，源于上游导出管道），视同缺失整行丢弃。
const missingIDSentinel = -2147483648

// LoaderOption 配置 Loader。
type LoaderOption func(*Loader)

// WithLogger 设置日志；默认静默。
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// Loader 从 CSV 读取交互表并做清洗：
//   - ID / ProdID 缺失、非数字、为 0 或为哨兵值的行丢弃
//   - ReviewCount 强转 int，失败补 0
//   - Category / Brand / Description / Tags 缺失补空串
//
// 清洗规则与上游导出管道对齐，保证同一份 clean_data.csv
// 两边得到相同的行集。
type Loader struct {
	logger *zap.Logger
}

// NewLoader 创建 Loader。
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{}
	for _, opt := range opts {
		opt(ld)
	}
	ld.logger = logutil.OrNop(ld.logger)
	return ld
}

// LoadFile 从文件加载。
func (ld *Loader) LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ld.Load(f)
}

// Load 从 r 读取 CSV。首行必须是表头，列按名字识别，顺序不限。
// 必需列：ID, ProdID, Rating, Name。其余列可缺省。
func (ld *Loader) Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"ID", "ProdID", "Rating", "Name"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []Interaction
	dropped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		userID, ok := parseID(field(record, "ID"))
		if !ok {
			dropped++
			continue
		}
		itemID, ok := parseID(field(record, "ProdID"))
		if !ok {
			dropped++
			continue
		}

		rating, err := strconv.ParseFloat(field(record, "Rating"), 64)
		if err != nil {
			rating = 0
		}

		reviewCount, err := strconv.Atoi(field(record, "ReviewCount"))
		if err != nil {
			reviewCount = 0
		}

		rows = append(rows, Interaction{
			UserID:      userID,
			ItemID:      itemID,
			Rating:      rating,
			Name:        field(record, "Name"),
			Brand:       field(record, "Brand"),
			ImageURL:    field(record, "ImageURL"),
			ReviewCount: reviewCount,
			Category:    field(record, "Category"),
			Description: field(record, "Description"),
			Tags:        field(record, "Tags"),
		})
	}

	ld.logger.Info("interaction table loaded",
		zap.Int("rows", len(rows)),
		zap.Int("dropped", dropped),
	)
	return New(rows), nil
}

// parseID 解析用户/商品 ID。非数字、0、负数或哨兵值均视为缺失。
func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	// 上游偶尔把整型列导出成 "123.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	id := int64(f)
	if id <= 0 || id == missingIDSentinel {
		return 0, false
	}
	return id, true
}
