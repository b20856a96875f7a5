package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAccount(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/api/v1/accounts/0xabc0000000000000000000000000000000000001", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"address":"0xabc0000000000000000000000000000000000001","display":"vault.eth","avatar":""}}`))
	}))
	defer srv.Close()

	svc := NewService(srv.URL, 5*time.Second)

	// 地址大小写归一
	acct, err := svc.FetchAccount(context.Background(), " 0xABC0000000000000000000000000000000000001 ")
	require.NoError(t, err)
	assert.Equal(t, "vault.eth", acct.Display)

	// 第二次命中缓存，不再打后台
	_, err = svc.FetchAccount(context.Background(), "0xabc0000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchAccount_EmptyAddress(t *testing.T) {
	svc := NewService("http://127.0.0.1:0", time.Second)
	_, err := svc.FetchAccount(context.Background(), "  ")
	assert.Error(t, err)
}
