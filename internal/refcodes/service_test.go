package refcodes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleService(t *testing.T) *Service {
	t.Helper()
	codes, err := ReadCodes(strings.NewReader(sampleCodes))
	require.NoError(t, err)
	return NewService(codes)
}

func TestDecode(t *testing.T) {
	svc := newSampleService(t)
	assert.Equal(t, "New product or service", svc.Decode("category", "product_launch"))
	assert.Equal(t, "Usage of financial services", svc.Decode("pillar", "USAGE"))
	assert.Equal(t, "partnership", svc.Decode("category", "partnership"), "unknown codes pass through")
	assert.Equal(t, "GENDER", svc.Decode("pillar", "GENDER"))
	assert.Equal(t, "ACCESS", svc.Decode("region", "ACCESS"), "unknown fields pass through")
}

func TestCodes(t *testing.T) {
	svc := newSampleService(t)
	assert.Equal(t, 4, svc.Len())
	assert.Len(t, svc.Codes("category"), 2)
	assert.Empty(t, svc.Codes("gender"))
	assert.Len(t, svc.All(), 4)
}

func TestDefaultCodes(t *testing.T) {
	svc := NewService(DefaultCodes())
	for _, field := range []string{"category", "gender", "location", "pillar", "record_type"} {
		assert.NotEmpty(t, svc.Codes(field), field)
	}
	for _, rt := range []string{"observation", "event", "impact_link", "target"} {
		assert.NotEqual(t, rt, svc.Decode("record_type", rt), rt)
	}
}
