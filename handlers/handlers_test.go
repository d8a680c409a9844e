package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"gallery/auth"
	"gallery/kv"
	"gallery/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSecret = "test-admin-secret"

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := kv.NewBadgerStore("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	kv.Instance = store
	storage.UseStorage(storage.NewDiskStorage(&storage.Bucket{
		Name:        "test",
		StorageType: storage.StorageTypeFile,
		Path:        t.TempDir(),
	}))
	tokens := auth.NewTokenService("test-secret")
	return NewRouter(auth.NewActorResolver(tokens, adminSecret), tokens)
}

func request(t *testing.T, router *gin.Engine, method, target, authz string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, router *gin.Engine, method, target, authz string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return request(t, router, method, target, authz, bytes.NewReader(data), "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func uploadPhoto(t *testing.T, router *gin.Engine, authz string, parts ...string) *httptest.ResponseRecorder {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, part := range parts {
		fw, err := writer.CreateFormFile(part, part+".jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake " + part + " bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return request(t, router, http.MethodPost, "/photo?library=L1", authz, buf, writer.FormDataContentType())
}

func createMember(t *testing.T, router *gin.Engine, username string, libraries []string) (token string) {
	t.Helper()
	w := jsonRequest(t, router, http.MethodPost, "/user", adminSecret, gin.H{
		"username":       username,
		"password":       "hunter2",
		"library_access": libraries,
		"admin_access":   false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = jsonRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ = decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return "Bearer " + token
}

func TestUserRoutes(t *testing.T) {
	router := setupServer(t)

	// Only admins create users
	w := jsonRequest(t, router, http.MethodPost, "/user", "", gin.H{
		"username": "alice", "password": "hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	aliceToken := createMember(t, router, "alice", []string{"L1"})

	// Duplicate username
	w = jsonRequest(t, router, http.MethodPost, "/user", adminSecret, gin.H{
		"username": "alice", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown user and wrong password are deliberately distinct
	w = jsonRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"username": "bob", "password": "hunter2",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = jsonRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A user record is visible only to the account itself
	w = request(t, router, http.MethodGet, "/user/alice", aliceToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Equal(t, "alice", view["username"])
	assert.NotContains(t, view, "password")
	assert.NotContains(t, view, "created_by")

	w = request(t, router, http.MethodGet, "/user/alice", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = request(t, router, http.MethodGet, "/user/alice", adminSecret, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = request(t, router, http.MethodGet, "/user/bob", aliceToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLibraryRoutes(t *testing.T) {
	router := setupServer(t)
	aliceToken := createMember(t, router, "alice", []string{"L1"})

	w := jsonRequest(t, router, http.MethodPost, "/library", aliceToken, gin.H{"id": "L1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = jsonRequest(t, router, http.MethodPost, "/library", adminSecret, gin.H{"id": "not a valid id!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = jsonRequest(t, router, http.MethodPost, "/library", adminSecret, gin.H{"id": "L1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, router, http.MethodGet, "/library?library=L2", aliceToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = request(t, router, http.MethodGet, "/library", aliceToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, router, http.MethodGet, "/library?library=L1", aliceToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Equal(t, true, view["authorized"])
	assert.NotContains(t, view, "created_by")

	w = request(t, router, http.MethodGet, "/library?library=L1", adminSecret, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	view = decode(t, w)
	assert.Equal(t, "admin", view["created_by"])
}

// TestGalleryScenario runs the whole flow: admin provisions a library and a
// member, the member uploads a photo into an album, anonymous callers see
// nothing until the album goes public, and removing the photo removes its
// stored variants.
func TestGalleryScenario(t *testing.T) {
	router := setupServer(t)
	aliceToken := createMember(t, router, "alice", []string{"L1"})

	w := jsonRequest(t, router, http.MethodPost, "/library", adminSecret, gin.H{"id": "L1"})
	require.Equal(t, http.StatusOK, w.Code)

	// Album, private by default
	w = jsonRequest(t, router, http.MethodPost, "/album?library=L1", adminSecret, gin.H{"name": "Trip"})
	require.Equal(t, http.StatusOK, w.Code)
	album := decode(t, w)
	albumID, _ := album["id"].(string)
	require.Len(t, albumID, 16)
	assert.Equal(t, false, album["public"])

	w = jsonRequest(t, router, http.MethodPost, "/album?library=L1", adminSecret, gin.H{"name": "Trip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Upload needs all three variants and library access
	w = uploadPhoto(t, router, "", "original", "thumbnail", "preview")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = uploadPhoto(t, router, aliceToken, "original", "thumbnail")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = uploadPhoto(t, router, aliceToken, "original", "thumbnail", "preview")
	require.Equal(t, http.StatusOK, w.Code)
	photoID, _ := decode(t, w)["id"].(string)
	require.Len(t, photoID, 16)

	// The upload did not touch the album document
	w = request(t, router, http.MethodGet, "/library?library=L1", aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	albums := decode(t, w)["albums"].([]interface{})
	require.Len(t, albums, 1)
	assert.Empty(t, albums[0].(map[string]interface{})["photos"])

	// Attach the photo and make it the cover
	w = jsonRequest(t, router, http.MethodPatch, "/album/"+albumID+"?library=L1", aliceToken, gin.H{
		"photos": []gin.H{{"id": photoID, "author": "Bob"}},
		"cover":  photoID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode(t, w)
	assert.Equal(t, photoID, patched["cover"])

	// Anonymous callers see no albums while the album is private
	w = request(t, router, http.MethodGet, "/library?library=L1", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Equal(t, false, view["authorized"])
	assert.Empty(t, view["albums"])

	// The member sees the album with the redacted photo
	w = request(t, router, http.MethodGet, "/library?library=L1", aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	albums = decode(t, w)["albums"].([]interface{})
	require.Len(t, albums, 1)
	memberAlbum := albums[0].(map[string]interface{})
	assert.Equal(t, photoID, memberAlbum["cover"])
	photos := memberAlbum["photos"].([]interface{})
	require.Len(t, photos, 1)
	photo := photos[0].(map[string]interface{})
	assert.Equal(t, photoID, photo["id"])
	assert.Equal(t, "Bob", photo["author"])
	assert.NotContains(t, photo, "uploaded_by")
	assert.NotContains(t, photo, "timestamp")

	// Publishing the album makes it visible anonymously
	w = jsonRequest(t, router, http.MethodPatch, "/album/"+albumID+"?library=L1", aliceToken, gin.H{
		"public": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = request(t, router, http.MethodGet, "/library?library=L1", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["albums"], 1)

	// Fetch a stored variant
	w = request(t, router, http.MethodGet, "/photo/"+photoID+"?size=original", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=604800, immutable", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.Equal(t, "fake original bytes", w.Body.String())

	w = request(t, router, http.MethodGet, "/photo/"+photoID+"?size=huge", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = request(t, router, http.MethodGet, "/photo/"+photoID, "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Dropping the photo from the list clears the cover and the objects
	w = jsonRequest(t, router, http.MethodPatch, "/album/"+albumID+"?library=L1", aliceToken, gin.H{
		"photos": []gin.H{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	patched = decode(t, w)
	assert.NotContains(t, patched, "cover")
	assert.Empty(t, patched["photos"])

	for _, size := range []string{"original", "thumbnail", "preview"} {
		w = request(t, router, http.MethodGet, "/photo/"+photoID+"?size="+size, "", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, size)
	}

	// And finally delete the album
	w = request(t, router, http.MethodDelete, "/album/"+albumID+"?library=L1", aliceToken, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = request(t, router, http.MethodDelete, "/album/"+albumID+"?library=L1", aliceToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAlbumCoverSemantics(t *testing.T) {
	router := setupServer(t)
	aliceToken := createMember(t, router, "alice", []string{"L1"})
	w := jsonRequest(t, router, http.MethodPost, "/library", adminSecret, gin.H{"id": "L1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = jsonRequest(t, router, http.MethodPost, "/album?library=L1", aliceToken, gin.H{"name": "Trip"})
	require.Equal(t, http.StatusOK, w.Code)
	albumID, _ := decode(t, w)["id"].(string)

	w = uploadPhoto(t, router, aliceToken, "original", "thumbnail", "preview")
	require.Equal(t, http.StatusOK, w.Code)
	photoID, _ := decode(t, w)["id"].(string)

	w = jsonRequest(t, router, http.MethodPatch, "/album/"+albumID+"?library=L1", aliceToken, gin.H{
		"photos": []gin.H{{"id": photoID}},
		"cover":  photoID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, photoID, decode(t, w)["cover"])

	// A cover outside the photo list is silently ignored
	w = jsonRequest(t, router, http.MethodPatch, "/album/"+albumID+"?library=L1", aliceToken, gin.H{
		"cover": "something-else00",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, photoID, decode(t, w)["cover"])

	// An explicit null clears
	w = request(t, router, http.MethodPatch, "/album/"+albumID+"?library=L1", aliceToken,
		bytes.NewReader([]byte(`{"cover":null}`)), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w), "cover")
}
