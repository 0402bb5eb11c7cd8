package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMediaHost accepts unsigned uploads and records delete-by-token
// calls. Uploaded files whose content contains "fail" are rejected
// with a 404 so tests do not sit through the retry delays.
type fakeMediaHost struct {
	mu            sync.Mutex
	uploads       int
	deletedTokens []string
}

func (f *fakeMediaHost) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/delete_by_token"):
			r.ParseForm()
			f.mu.Lock()
			f.deletedTokens = append(f.deletedTokens, r.FormValue("token"))
			f.mu.Unlock()
			fmt.Fprint(w, `{"result": "ok"}`)
		case strings.HasSuffix(r.URL.Path, "/upload"):
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			file, _, err := r.FormFile("file")
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			content, _ := io.ReadAll(file)
			file.Close()
			if strings.Contains(string(content), "fail") {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			f.mu.Lock()
			f.uploads++
			n := f.uploads
			f.mu.Unlock()
			fmt.Fprintf(
				w,
				`{
					"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/asset-%d.png",
					"public_id": "asset-%d",
					"resource_type": "image",
					"delete_token": "token-%d"
				}`,
				n, n, n,
			)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeMediaHost) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.deletedTokens...)
}

func newTestPipeline(t *testing.T) (*Pipeline, *fakeMediaHost) {
	t.Helper()
	host := &fakeMediaHost{}
	server := httptest.NewServer(host.handler())
	t.Cleanup(server.Close)

	uploader := NewUploader("demo", "unsigned-preset", "test-agent")
	uploader.BaseUrl = server.URL
	return NewPipeline(uploader), host
}

func stageFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.png")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInsertProvisionalStagesACopy(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	src := stageFile(t, "image bytes")
	ref, err := pipeline.InsertProvisional(src)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, ProvisionalScheme))
	assert.Equal(t, 1, pipeline.PendingCount())

	// the source can disappear without affecting the staged copy
	require.NoError(t, os.Remove(src))

	content := fmt.Sprintf(`<p>hi</p><img src="%s"/>`, ref)
	resolved, assets, err := pipeline.ResolveAll(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.NotContains(t, resolved, ProvisionalScheme)
}

func TestResolveAllRewritesAndTransforms(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	ref, err := pipeline.InsertProvisional(stageFile(t, "image bytes"))
	require.NoError(t, err)

	content := fmt.Sprintf(`<p>intro</p><img src="%s"/><p>see %s</p>`, ref, ref)
	resolved, assets, err := pipeline.ResolveAll(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, assets, 1)

	assert.NotContains(t, resolved, ref, "every occurrence is substituted")
	assert.Contains(
		t,
		resolved,
		"https://res.cloudinary.com/demo/image/upload/c_limit,w_900,q_80,f_auto,dpr_auto/v1/asset-1.png",
		"embedded images get the inline delivery transform",
	)
	assert.Equal(t, 0, pipeline.PendingCount())
}

func TestResolveAllIsAllOrNothing(t *testing.T) {
	pipeline, host := newTestPipeline(t)

	goodRef, err := pipeline.InsertProvisional(stageFile(t, "good bytes"))
	require.NoError(t, err)
	badRef, err := pipeline.InsertProvisional(stageFile(t, "these bytes fail"))
	require.NoError(t, err)

	content := fmt.Sprintf(`<img src="%s"/><img src="%s"/>`, goodRef, badRef)
	_, _, err = pipeline.ResolveAll(context.Background(), content)
	require.Error(t, err)

	// the asset that did upload was deleted again
	assert.Equal(t, []string{"token-1"}, host.tokens())
	assert.Equal(t, 2, pipeline.PendingCount(), "a failed publish can be retried")
}

func TestResolveAllReleasesOrphanedStagedFiles(t *testing.T) {
	pipeline, host := newTestPipeline(t)

	keptRef, err := pipeline.InsertProvisional(stageFile(t, "kept"))
	require.NoError(t, err)
	orphanRef, err := pipeline.InsertProvisional(stageFile(t, "orphan"))
	require.NoError(t, err)

	orphanPath := pipeline.pending[orphanRef].stagedPath

	// the orphaned embed was deleted from the draft before publishing
	content := fmt.Sprintf(`<img src="%s"/>`, keptRef)
	resolved, assets, err := pipeline.ResolveAll(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, assets, 1, "orphaned entries are not uploaded")

	assert.NotContains(t, resolved, orphanRef)
	assert.NoFileExists(t, orphanPath)
	assert.Equal(t, 0, pipeline.PendingCount())
	assert.Empty(t, host.tokens())
}

func TestReplaceCoverDeletesPreviousAsset(t *testing.T) {
	pipeline, host := newTestPipeline(t)

	previous := &UploadedAsset{
		PublicId:     "old-cover",
		ResourceType: "image",
		DeleteToken:  "old-token",
	}
	asset, err := pipeline.ReplaceCover(context.Background(), previous, stageFile(t, "new cover"))
	require.NoError(t, err)
	require.NotNil(t, asset)

	assert.Equal(t, []string{"old-token"}, host.tokens())
	assert.Equal(
		t,
		"https://res.cloudinary.com/demo/image/upload/c_limit,w_1600,q_85,f_auto,dpr_auto/v1/asset-1.png",
		CoverUrl(asset),
	)
}
