package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodLimiterKeyStripsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/actions/count?type=note_added", nil)

	l := NewMethodLimiter().AddBuckets(BucketRule{Key: "/api/actions/count", FillInterval: time.Second, Capacity: 2})
	key := l.Key(c)
	assert.Equal(t, "/api/actions/count", key)

	bucket, ok := l.GetBucket(key)
	require.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}

func TestIPLimiterCreatesBucketPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewIPLimiter(BucketRule{FillInterval: time.Minute, Capacity: 1})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"

	key := l.Key(c)
	bucket, ok := l.GetBucket(key)
	require.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}
