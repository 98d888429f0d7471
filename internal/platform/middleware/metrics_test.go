// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/postly/internal/platform/middleware"
)

/*
TestMetrics labels requests by route pattern, not raw path.
*/
func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	router := chi.NewRouter()
	router.Use(middleware.Metrics(registry))
	router.Get("/posts/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/posts/1", "/posts/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "postly_http_requests_total" {
			continue
		}
		require.Len(t, family.GetMetric(), 1)

		metric := family.GetMetric()[0]
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		assert.Equal(t, map[string]string{"method": "GET", "route": "/posts/{id}", "status": "418"}, labels)
		assert.Equal(t, 2.0, metric.GetCounter().GetValue())
		found = true
	}
	assert.True(t, found)
}
