package classifier

import (
	"path/filepath"
	"sort"

	"cppcloc/internal/model"
)

// CategoryDescriptor 用于对外展示分类及后缀信息。
type CategoryDescriptor struct {
	Category   model.Category
	Extensions []string
}

// Registry 管理后缀到文件分类的映射。
// 后缀区分大小写且必须完全匹配，例如 .H 与 .CPP 不会被识别。
type Registry struct {
	categoryByExt map[string]model.Category
}

// NewRegistry 创建包含内置后缀的注册中心。
func NewRegistry() *Registry {
	return &Registry{
		categoryByExt: map[string]model.Category{
			".h":   model.Header,
			".hpp": model.Header,
			".c":   model.Implementation,
			".cpp": model.Implementation,
		},
	}
}

// CategoryForFile 根据文件后缀查找分类。
func (r *Registry) CategoryForFile(path string) (model.Category, bool) {
	category, ok := r.categoryByExt[filepath.Ext(path)]
	return category, ok
}

// Categories 按报表顺序返回分类清单。
func (r *Registry) Categories() []CategoryDescriptor {
	result := make([]CategoryDescriptor, 0, len(model.Categories()))
	for _, category := range model.Categories() {
		result = append(result, CategoryDescriptor{
			Category:   category,
			Extensions: r.ExtensionsForCategory(category),
		})
	}
	return result
}

// ExtensionsForCategory 返回指定分类对应的全部后缀。
func (r *Registry) ExtensionsForCategory(category model.Category) []string {
	extensions := make([]string, 0, 2)
	for ext, item := range r.categoryByExt {
		if item == category {
			extensions = append(extensions, ext)
		}
	}
	sort.Strings(extensions)
	return extensions
}
