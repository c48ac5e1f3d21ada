package fastjson

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	ID     int                    `json:"id"`
	Name   string                 `json:"name"`
	Active bool                   `json:"active"`
	Meta   map[string]interface{} `json:"meta"`
	Tags   []string               `json:"tags"`
}

func getTestData() *TestData {
	return &TestData{
		ID:     123,
		Name:   "Test User",
		Active: true,
		Meta: map[string]interface{}{
			"role": "admin",
		},
		Tags: []string{"golang", "templates"},
	}
}

func TestMarshalMatchesStandardLibrary(t *testing.T) {
	data := getTestData()

	std, err := json.Marshal(data)
	require.NoError(t, err)
	fast, err := Marshal(data)
	require.NoError(t, err)

	assert.JSONEq(t, string(std), string(fast))
}

func TestToMap(t *testing.T) {
	m, err := ToMap(getTestData())
	require.NoError(t, err)

	assert.Equal(t, "Test User", m["name"])
	assert.Equal(t, float64(123), m["id"])
	assert.Equal(t, map[string]interface{}{"role": "admin"}, m["meta"])
}

func TestToMapRejectsScalars(t *testing.T) {
	_, err := ToMap(42)
	assert.Error(t, err)
}

func TestNewEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Encode(map[string]bool{"success": true}))
	assert.JSONEq(t, `{"success":true}`, buf.String())
}

// Benchmark standard encoding/json
func BenchmarkStandardJSON(b *testing.B) {
	data := getTestData()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(data); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark goccy/go-json
func BenchmarkFastJSON(b *testing.B) {
	data := getTestData()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Marshal(data); err != nil {
			b.Fatal(err)
		}
	}
}
