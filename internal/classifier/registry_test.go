package classifier

import (
	"reflect"
	"testing"

	"cppcloc/internal/model"
)

// TestRegistryCategoryForFile 验证后缀区分大小写且完全匹配。
func TestRegistryCategoryForFile(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		path     string
		category model.Category
		ok       bool
	}{
		{path: "include/a.h", category: model.Header, ok: true},
		{path: "include/a.hpp", category: model.Header, ok: true},
		{path: "src/a.c", category: model.Implementation, ok: true},
		{path: "src/a.cpp", category: model.Implementation, ok: true},
		{path: "src/a.cc", ok: false},
		{path: "src/a.hxx", ok: false},
		{path: "src/A.H", ok: false},
		{path: "src/a.CPP", ok: false},
		{path: "README.md", ok: false},
		{path: "Makefile", ok: false},
	}

	for _, item := range cases {
		category, ok := registry.CategoryForFile(item.path)
		if ok != item.ok {
			t.Fatalf("CategoryForFile(%q) ok=%v, expected %v", item.path, ok, item.ok)
		}
		if ok && category != item.category {
			t.Fatalf("CategoryForFile(%q) = %s, expected %s", item.path, category, item.category)
		}
	}
}

// TestRegistryCategories 验证分类清单顺序与后缀。
func TestRegistryCategories(t *testing.T) {
	descriptors := NewRegistry().Categories()

	expected := []CategoryDescriptor{
		{Category: model.Header, Extensions: []string{".h", ".hpp"}},
		{Category: model.Implementation, Extensions: []string{".c", ".cpp"}},
	}
	if !reflect.DeepEqual(descriptors, expected) {
		t.Fatalf("unexpected categories: %+v", descriptors)
	}
}
