package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/inklinehq/Inkline-CLI/utils"
)

// ProvisionalScheme prefixes every provisional media reference so
// they can never be confused with a real delivery URL.
const ProvisionalScheme = "pending://"

type pendingUpload struct {
	ref        string
	stagedPath string
	seq        int
}

// Pipeline coordinates inserting provisional media references into
// draft content now and uploading the real assets at publish time.
//
// Each inserted file is staged to a temporary copy so later changes
// to the source file do not affect what gets published.
type Pipeline struct {
	uploader *Uploader

	mu      sync.Mutex
	counter int
	pending map[string]*pendingUpload
}

func NewPipeline(uploader *Uploader) *Pipeline {
	return &Pipeline{
		uploader: uploader,
		pending:  make(map[string]*pendingUpload),
	}
}

// InsertProvisional stages filePath and returns a provisional
// reference to embed in the draft content. No network request
// is made here.
func (p *Pipeline) InsertProvisional(filePath string) (string, error) {
	src, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf(
			"upload error %d: unable to open %s, more info => %v",
			utils.OS_ERROR,
			filePath,
			err,
		)
	}
	defer src.Close()

	staged, err := os.CreateTemp("", "inkline-asset-*"+filepath.Ext(filePath))
	if err != nil {
		return "", fmt.Errorf(
			"upload error %d: unable to stage %s, more info => %v",
			utils.OS_ERROR,
			filePath,
			err,
		)
	}
	if _, err := io.Copy(staged, src); err != nil {
		staged.Close()
		os.Remove(staged.Name())
		return "", fmt.Errorf(
			"upload error %d: unable to stage %s, more info => %v",
			utils.OS_ERROR,
			filePath,
			err,
		)
	}
	staged.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter++
	ref := fmt.Sprintf(
		"%sasset-%d%s",
		ProvisionalScheme,
		p.counter,
		strings.ToLower(filepath.Ext(filePath)),
	)
	p.pending[ref] = &pendingUpload{
		ref:        ref,
		stagedPath: staged.Name(),
		seq:        p.counter,
	}
	return ref, nil
}

// PendingCount reports how many staged uploads have not been
// resolved or released yet.
func (p *Pipeline) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Pipeline) release(entry *pendingUpload) {
	if err := os.Remove(entry.stagedPath); err != nil && !os.IsNotExist(err) {
		utils.LogError(err, "", false, utils.ERROR)
	}
}

// rewrite substitutes ref with the delivery URL wherever it appears,
// attribute-aware for the common embed tags and falling back to a
// plain replacement for anything else.
func rewriteRef(content, ref, deliveryUrl string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		doc.Find("img, video, source, a").Each(func(_ int, sel *goquery.Selection) {
			for _, attr := range []string{"src", "href", "poster"} {
				if val, ok := sel.Attr(attr); ok && val == ref {
					sel.SetAttr(attr, deliveryUrl)
				}
			}
		})
		if html, err := doc.Find("body").Html(); err == nil {
			content = html
		}
	}
	// the reference may also appear outside an attribute
	return strings.ReplaceAll(content, ref, deliveryUrl)
}

// ResolveAll uploads every staged asset whose provisional reference
// still appears in content and substitutes each reference with its
// permanent delivery URL, transformed with the inline defaults for
// images. Staged copies are removed afterwards, including those the
// user deleted from the draft before publishing.
//
// If any upload fails the whole operation fails and the content is
// not rewritten, so a provisional reference can never slip into a
// published post. Assets that were already uploaded before the
// failure are deleted again on a best-effort basis.
func (p *Pipeline) ResolveAll(ctx context.Context, content string) (string, []*UploadedAsset, error) {
	p.mu.Lock()
	var referenced, orphaned []*pendingUpload
	for _, entry := range p.pending {
		if strings.Contains(content, entry.ref) {
			referenced = append(referenced, entry)
		} else {
			orphaned = append(orphaned, entry)
		}
	}
	p.mu.Unlock()

	// uploads happen in insertion order
	sort.Slice(referenced, func(i, j int) bool {
		return referenced[i].seq < referenced[j].seq
	})

	// staged copies the user deleted from the draft are simply dropped
	for _, entry := range orphaned {
		p.release(entry)
		p.forget(entry.ref)
	}

	uploaded := make(map[string]*UploadedAsset, len(referenced))
	var assets []*UploadedAsset
	for _, entry := range referenced {
		asset, err := p.uploader.UploadFile(ctx, entry.stagedPath)
		if err != nil {
			// roll back what already made it to the media host
			for _, prev := range assets {
				if delErr := p.uploader.DeleteByToken(ctx, prev); delErr != nil {
					utils.LogError(delErr, "", false, utils.ERROR)
				}
			}
			return "", nil, fmt.Errorf(
				"upload error %d: publish aborted, %s could not be uploaded, more info => %v",
				utils.UPLOAD_ERROR,
				entry.ref,
				err,
			)
		}
		uploaded[entry.ref] = asset
		assets = append(assets, asset)
	}

	for _, entry := range referenced {
		asset := uploaded[entry.ref]
		deliveryUrl := asset.SecureUrl
		if asset.ResourceType == "image" {
			deliveryUrl = TransformUrl(deliveryUrl, DefaultTransform())
		}
		content = rewriteRef(content, entry.ref, deliveryUrl)

		p.release(entry)
		p.forget(entry.ref)
	}

	return content, assets, nil
}

func (p *Pipeline) forget(ref string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, ref)
}

// ReplaceCover uploads the new cover image and then best-effort
// deletes the previous one. The media host remains the source of
// truth for storage, so a failed deletion is only logged.
func (p *Pipeline) ReplaceCover(ctx context.Context, previous *UploadedAsset, filePath string) (*UploadedAsset, error) {
	asset, err := p.uploader.UploadFile(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if previous != nil {
		if delErr := p.uploader.DeleteByToken(ctx, previous); delErr != nil {
			utils.LogError(delErr, "", false, utils.ERROR)
		}
	}
	return asset, nil
}

// CoverUrl returns the delivery URL for a cover asset with
// the cover transform applied.
func CoverUrl(asset *UploadedAsset) string {
	if asset == nil {
		return ""
	}
	return TransformUrl(asset.SecureUrl, CoverTransform())
}
