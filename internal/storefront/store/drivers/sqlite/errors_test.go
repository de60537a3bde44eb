package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniqueField(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"constraint failed: UNIQUE constraint failed: users.email (2067)", "email"},
		{"UNIQUE constraint failed: product_images.product_id, product_images.image_url", "product_id"},
		{"UNIQUE constraint failed: products.sku", "sku"},
		{"disk I/O error", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, uniqueField(tt.msg), tt.msg)
	}
}

func TestWithForeignKeys(t *testing.T) {
	require.Equal(t, ":memory:?_pragma=foreign_keys(1)", withForeignKeys(":memory:"))
	require.Equal(t, "file.db?cache=shared&_pragma=foreign_keys(1)", withForeignKeys("file.db?cache=shared"))
	require.Equal(t, "x.db?_pragma=foreign_keys(0)", withForeignKeys("x.db?_pragma=foreign_keys(0)"))
}
