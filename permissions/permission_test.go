package permissions_test

import (
	"net/http"
	"testing"

	"oec/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPermissions(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/posts", Method: http.MethodGet, Skip: true},
			{Path: "/v1/admin/posts/", Method: http.MethodPost, Permissions: []string{"admin"}},
			{Path: "/v1/admin/posts/{id}", Method: http.MethodDelete, Permissions: []string{"admin", "superadmin"}},
		},
	}

	tests := []struct {
		name   string
		path   string
		method string
		want   permissions.Permission
	}{
		{
			name:   "exact pattern",
			path:   "/v1/admin/posts/{id}",
			method: http.MethodDelete,
			want:   data.Endpoints[2],
		},
		{
			name:   "trailing slash on the route",
			path:   "/v1/posts/",
			method: http.MethodGet,
			want:   data.Endpoints[0],
		},
		{
			name:   "trailing slash on the entry",
			path:   "/v1/admin/posts",
			method: http.MethodPost,
			want:   data.Endpoints[1],
		},
		{
			name:   "method mismatch",
			path:   "/v1/posts",
			method: http.MethodPost,
			want:   permissions.Permission{},
		},
		{
			name:   "unknown route",
			path:   "/v1/unknown",
			method: http.MethodGet,
			want:   permissions.Permission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.FindPermissions(tt.path, tt.method))
		})
	}
}

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	public := data.FindPermissions("/v1/bookings/availability", http.MethodGet)
	assert.True(t, public.Skip)

	transfer := data.FindPermissions("/v1/store/items/{id}/transactions", http.MethodPost)
	assert.False(t, transfer.Skip)
	assert.ElementsMatch(t, []string{"superadmin", "admin", "store_manager"}, transfer.Permissions)
}
