package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 两种图书存放在同一张表,以book_type列区分
// 3. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	// 编码重复时返回ErrCodeDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByCode 根据编码查找图书
	FindByCode(ctx context.Context, code string) (*Book, error)

	// FindAll 查询全部图书(按ID倒序)
	FindAll(ctx context.Context) ([]*Book, error)

	// SearchByName 按书名模糊搜索(按书名排序)
	SearchByName(ctx context.Context, query string) ([]*Book, error)

	// FindByType 按类型查询(按书名排序)
	FindByType(ctx context.Context, t Type) ([]*Book, error)

	// FindByPublisher 按出版社查询,t为空表示不限类型(按书名排序)
	FindByPublisher(ctx context.Context, publisher string, t Type) ([]*Book, error)

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Update 更新图书信息(不修改编码和类型)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除,不级联)
	Delete(ctx context.Context, id uint) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page      int    // 页码(从1开始)
	PageSize  int    // 每页数量
	Keyword   string // 搜索关键词(搜索书名、编码、出版社)
	Type      Type   // 类型过滤,为空不过滤
	Publisher string // 出版社过滤,为空不过滤
	SortBy    string // 排序字段(price_asc, price_desc, name_asc, created_at_desc, id_desc)
}
