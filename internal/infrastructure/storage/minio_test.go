package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", publicBase(Config{Endpoint: "localhost:9000"}))
	assert.Equal(t, "https://s3.example.com", publicBase(Config{Endpoint: "s3.example.com", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com", publicBase(Config{Endpoint: "minio:9000", PublicURL: "https://cdn.example.com/"}))
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/items/GIN01/foto.png", ObjectURL("http://localhost:9000/", "items", "/GIN01/foto.png"))
}
