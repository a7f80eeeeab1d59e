// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.TopicsSearched.Inc()
	m.PapersFound.WithLabelValues("llm agents").Add(3)
	m.PapersReturned.Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TopicsSearched))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PapersFound.WithLabelValues("llm agents")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PapersReturned))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	m.TopicsSearched.Add(2)

	path := filepath.Join(t.TempDir(), "arxiv_digest.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "arxiv_digest_topics_searched_total 2")
}
