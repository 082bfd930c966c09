package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("key"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/destination/city/18":
			w.Write([]byte(`{"meta":{"code":200},"data":[{"id":444,"name":"Surabaya"},{"id":419,"name":"Malang"}]}`))
		case "/destination/district/444":
			w.Write([]byte(`{"meta":{"code":200},"data":[{"id":6316,"name":"Gubeng"}]}`))
		case "/destination/sub-district/6316":
			w.Write([]byte(`{"meta":{"code":200},"data":[{"id":82513,"name":"Airlangga","zip_code":"60286"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"meta":{"code":404},"data":[]}`))
		}
	}))
}

func TestGetKotaJawaTimur(t *testing.T) {
	server := regionServer(t)
	defer server.Close()

	client := &RajaOngkirClient{APIKey: "test-api-key", BaseURL: server.URL, HTTPClient: server.Client()}

	kota := client.GetKotaJawaTimur(context.Background())
	require.Len(t, kota, 2)
	assert.Equal(t, "444", kota[0].ID)
	assert.Equal(t, "Surabaya", kota[0].Nama)
	assert.Nil(t, kota[0].KodePos)
}

func TestGetKecamatanByKota(t *testing.T) {
	server := regionServer(t)
	defer server.Close()

	client := &RajaOngkirClient{APIKey: "test-api-key", BaseURL: server.URL, HTTPClient: server.Client()}

	kecamatan := client.GetKecamatanByKota(context.Background(), "444")
	require.Len(t, kecamatan, 1)
	assert.Equal(t, "Gubeng", kecamatan[0].Nama)
}

func TestGetKelurahanByKecamatanIncludesKodePos(t *testing.T) {
	server := regionServer(t)
	defer server.Close()

	client := &RajaOngkirClient{APIKey: "test-api-key", BaseURL: server.URL, HTTPClient: server.Client()}

	kelurahan := client.GetKelurahanByKecamatan(context.Background(), "6316")
	require.Len(t, kelurahan, 1)
	assert.Equal(t, "Airlangga", kelurahan[0].Nama)
	require.NotNil(t, kelurahan[0].KodePos)
	assert.Equal(t, "60286", *kelurahan[0].KodePos)
}

func TestRegionLookupFailureReturnsEmpty(t *testing.T) {
	server := regionServer(t)
	defer server.Close()

	client := &RajaOngkirClient{APIKey: "test-api-key", BaseURL: server.URL, HTTPClient: server.Client()}

	assert.Empty(t, client.GetKecamatanByKota(context.Background(), "99999"))
	assert.Empty(t, client.GetKecamatanByKota(context.Background(), "bukan-angka"))

	// Server mati: tetap daftar kosong, bukan error.
	server.Close()
	assert.Empty(t, client.GetKotaJawaTimur(context.Background()))
}
