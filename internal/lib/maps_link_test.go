package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapsLinkByName(t *testing.T) {
	assert.Equal(t,
		"https://maps.google.com/?q=Torre+de+Bel%C3%A9m",
		MapsLinkByName("Torre de Belém"))
}

func TestMapsLinkByCoords(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		link := MapsLinkByCoords(38.6916, -9.216, "Torre de Belém")
		assert.Contains(t, link, "https://maps.google.com/?q=")
		assert.Contains(t, link, "38.691600")
		assert.Contains(t, link, "-9.216000")
	})

	t.Run("coordinates only", func(t *testing.T) {
		assert.Equal(t,
			"https://maps.google.com/?q=38.691600%2C-9.216000",
			MapsLinkByCoords(38.6916, -9.216, ""))
	})
}
