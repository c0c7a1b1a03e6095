package course

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/prokaj/canvasctl/internal/canvas"
	"github.com/prokaj/canvasctl/internal/store"
)

// UploadOptions carries the per-course default directories. A bare file
// name on either side is placed under the matching default.
type UploadOptions struct {
	LocalDefaultDir  string
	RemoteDefaultDir string
}

// normalizeLocal splits a local path, substituting the default directory
// for a bare name and making the directory absolute.
func normalizeLocal(p, defaultDir string) (string, string, error) {
	dir, base := filepath.Split(p)
	if dir == "" {
		dir = defaultDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("normalize %s: %w", p, err)
	}
	return abs, base, nil
}

// normalizeRemote splits a remote path the same way, keeping it relative
// to the course file root.
func normalizeRemote(p, defaultDir string) (string, string) {
	dir, base := path.Split(p)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		dir = defaultDir
	}
	return dir, base
}

// ResolveFolder returns the remote folder at path, creating it when the
// remote does not know it yet.
func ResolveFolder(ctx context.Context, api canvas.CourseAPI, folderPath string) (*canvas.Folder, error) {
	folders, err := api.ResolveFolderPath(ctx, folderPath)
	if err == nil && len(folders) > 0 {
		return &folders[len(folders)-1], nil
	}
	parent, name := path.Split(folderPath)
	parent = strings.TrimSuffix(parent, "/")
	folder, err := api.CreateFolder(ctx, name, parent)
	if err != nil {
		return nil, fmt.Errorf("create folder %s: %w", folderPath, err)
	}
	return folder, nil
}

// Upload pushes a local file to the remote course, overwriting any file of
// the same name, and records the new id in the files namespace of the
// cache. remotePath may be empty, in which case the local name under the
// remote default directory is used.
func Upload(ctx context.Context, api canvas.CourseAPI, cache *store.Cache, localPath, remotePath string, opts UploadOptions) (*canvas.File, error) {
	localDir, localName, err := normalizeLocal(localPath, opts.LocalDefaultDir)
	if err != nil {
		return nil, err
	}
	if remotePath == "" {
		remotePath = localName
	}
	remoteDir, remoteName := normalizeRemote(remotePath, opts.RemoteDefaultDir)

	folder, err := ResolveFolder(ctx, api, remoteDir)
	if err != nil {
		return nil, err
	}

	src := filepath.Join(localDir, localName)
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}

	file, err := api.UploadFile(ctx, folder.ID, remoteName, info.Size(), f, true)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", src, err)
	}

	if cache != nil {
		files, err := cache.Member(store.NamespaceFiles)
		if err != nil {
			return nil, err
		}
		key := "/" + remoteName
		if remoteDir != "" {
			key = "/" + remoteDir + "/" + remoteName
		}
		if err := files.Set(key, file.ID); err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
	}
	return file, nil
}

// UpdateFrontPage converts marked-up text to HTML and installs it as the
// course front page.
func UpdateFrontPage(ctx context.Context, api canvas.CourseAPI, conv TextConverter, title, text string) error {
	html := conv.Convert(text, "markdown", "html")
	if html == "" {
		return fmt.Errorf("front page conversion produced no output")
	}
	return api.EditFrontPage(ctx, title, html)
}
