package preflight

import (
	"context"
	"os"
	"strings"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// FilesResolver is C7.2: per-package file-list diffs between what an
// operation will change and what is currently on disk.
type FilesResolver struct {
	Pacman *pacman.Client

	// statFile is swappable so tests can simulate "changed" vs "new"
	// classification without a real filesystem.
	statFile func(path string) (exists bool)
}

func (r *FilesResolver) stat(path string) bool {
	if r.statFile != nil {
		return r.statFile(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// Run drains fab.FilesRequests until ctx is cancelled.
func (r *FilesResolver) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.FilesRequests:
			fab.FilesResults <- r.Resolve(ctx, req)
		}
	}
}

// Resolve computes a PackageFileInfo for every item in req, always
// emitting one entry per package even when the file database is
// unavailable, per the files resolver's contract.
func (r *FilesResolver) Resolve(ctx context.Context, req channels.PlanRequest) []model.PackageFileInfo {
	out := make([]model.PackageFileInfo, 0, len(req.Items))
	for _, it := range req.Items {
		out = append(out, r.resolveOne(ctx, it, req.Action))
	}
	return out
}

func (r *FilesResolver) resolveOne(ctx context.Context, item model.PackageItem, action model.ActionKind) model.PackageFileInfo {
	if action == model.ActionRemove {
		return r.resolveRemove(ctx, item)
	}
	return r.resolveInstall(ctx, item)
}

func (r *FilesResolver) resolveInstall(ctx context.Context, item model.PackageItem) model.PackageFileInfo {
	info := model.PackageFileInfo{PackageName: item.Name}

	paths, err := r.Pacman.QueryFileOwner(ctx, item.Name)
	if err != nil {
		if err == pacman.ErrFileDatabaseUnavailable {
			info.FilesError = "file database unavailable (run pacman -Fy)"
			return info
		}
		info.FilesError = err.Error()
		return info
	}

	for _, path := range paths {
		class := model.FileNew
		isConfig := isConfigPath(path)
		exists := r.stat(path)
		if exists {
			class = model.FileChanged
			if isConfig {
				class = model.FileConfig
			}
		} else if isConfig {
			class = model.FileConfig
		}

		info.Files = append(info.Files, model.FileEntry{Path: path, Class: class})
		switch class {
		case model.FileNew:
			info.NewCount++
		case model.FileChanged:
			info.ChangedCount++
			info.PacnewCandidates = append(info.PacnewCandidates, path)
		case model.FileConfig:
			info.ConfigCount++
			// An already-installed config file pacman would overwrite is
			// exactly the case that produces a .pacnew, same as a plain
			// changed file; only a brand-new config path (not yet on
			// disk) is not a pacnew candidate.
			if exists {
				info.PacnewCandidates = append(info.PacnewCandidates, path)
			}
		}
	}

	return info
}

func (r *FilesResolver) resolveRemove(ctx context.Context, item model.PackageItem) model.PackageFileInfo {
	info := model.PackageFileInfo{PackageName: item.Name}

	paths, err := r.Pacman.ListOwnedFiles(ctx, item.Name)
	if err != nil {
		info.FilesError = err.Error()
		return info
	}

	for _, path := range paths {
		info.Files = append(info.Files, model.FileEntry{Path: path, Class: model.FileRemoved})
		info.RemovedCount++
		if isConfigPath(path) {
			info.PacsaveCandidates = append(info.PacsaveCandidates, path)
		}
	}

	return info
}

// isConfigPath approximates pacman's backup-array heuristic: paths under
// /etc are treated as config files likely to generate .pacnew/.pacsave
// files. The real backup array lives in the package's PKGINFO, which
// this worker does not have cheap access to without extracting the
// package archive, so /etc is the pragmatic proxy the UI's file diff
// uses.
func isConfigPath(path string) bool {
	return strings.HasPrefix(path, "/etc/")
}
