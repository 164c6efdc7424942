package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/test", "200"))

	RecordAPIRequest("GET", "/api/test", http.StatusOK, 10*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/test", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveStoreQueryCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("test", "find"))

	ObserveStoreQuery("test", "find", time.Now(), nil)
	ObserveStoreQuery("test", "find", time.Now(), errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(StoreQueryErrors.WithLabelValues("test", "find")))
}
