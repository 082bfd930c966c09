package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{
			"https://res.cloudinary.com/demo/image/upload/v1700000000/produk-images/kayu_jati_1700000000.jpg",
			"produk-images/kayu_jati_1700000000",
		},
		{
			"https://res.cloudinary.com/demo/image/upload/produk-images/triplek.png",
			"produk-images/triplek",
		},
		{"https://example.com/foto.jpg", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PublicIDFromURL(tc.url), tc.url)
	}
}
