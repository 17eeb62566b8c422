package storage

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUpload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "data.csv", r.FormValue("public_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sales.csv", header.Filename)

		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(payload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id": "data.csv", "secure_url": "https://blobs.test/data.csv"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	object, err := client.Upload(t.Context(), []byte("a,b\n1,2\n"), "data.csv", "sales.csv", "text/csv")
	require.NoError(t, err)

	assert.Equal(t, "data.csv", object.PublicID)
	assert.Equal(t, "https://blobs.test/data.csv", object.SecureURL)
}

func TestClientUploadFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.Upload(t.Context(), []byte("x"), "data.csv", "x.csv", "text/csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClientDelete(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	require.NoError(t, client.Delete(t.Context(), "data.csv"))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/files/data.csv", gotPath)
}

func TestClientDownload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a,b\n1,2\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	data, err := client.Download(t.Context(), server.URL+"/data.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestClientDownloadNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.Download(t.Context(), server.URL+"/missing.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
