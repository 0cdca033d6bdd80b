package tracing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributes(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("email", "a@b.com"),
		attribute.String("http.route", "/api/product"),
		attribute.String("long", strings.Repeat("x", 400)),
	)

	assert.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
	assert.Len(t, attrs[1].Value.AsString(), maxAttributeLength)
}

func TestSafeError(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	assert.EqualError(t, SafeError(errors.New(" boom ")), "boom")
}

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, provider)
}

func TestResourceFromRoute(t *testing.T) {
	assert.Equal(t, "product", resourceFromRoute("/api/product/:id"))
	assert.Equal(t, "customer", resourceFromRoute("/api/customer"))
	assert.Equal(t, "other", resourceFromRoute("/uploads/*filepath"))
	assert.Equal(t, "other", resourceFromRoute("unknown"))
}
