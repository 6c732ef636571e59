package pacman

import (
	"context"

	"github.com/pacsea/pacsea/pkg/model"
)

// FetchDetails fetches full PackageDetails for an official package by
// name, querying the remote sync database (-Si) and overlaying the local
// installed-state fields (-Qi) when present.
func (c *Client) FetchDetails(ctx context.Context, name string) (model.PackageDetails, error) {
	remote, err := c.QueryInfoRemote(ctx, name)
	if err != nil {
		return model.PackageDetails{}, err
	}

	local, _ := c.QueryInfoLocal(ctx, name)

	repo := remote.Str("Repository")
	arch := remote.Str("Architecture")

	d := model.PackageDetails{
		PackageItem: model.PackageItem{
			Name:        remote.Str("Name"),
			Version:     remote.Str("Version"),
			Description: remote.Str("Description"),
			Source:      model.Official(repo, arch),
		},
		Licenses:     remote.List("Licenses"),
		Groups:       remote.List("Groups"),
		Provides:     remote.List("Provides"),
		Depends:      remote.List("Depends On"),
		OptDepends:   remote.List("Optional Deps"),
		Conflicts:    remote.List("Conflicts With"),
		Replaces:     remote.List("Replaces"),
		DownloadSize: remote.SizeBytes("Download Size"),
		Owner:        remote.Str("Packager"),
		BuildDate:    remote.Str("Build Date"),
	}

	if len(local) > 0 {
		d.InstallSize = local.SizeBytes("Installed Size")
		if d.InstallSize == 0 {
			d.InstallSize = remote.SizeBytes("Installed Size")
		}
		d.RequiredBy = local.List("Required By")
	} else {
		d.InstallSize = remote.SizeBytes("Installed Size")
	}

	return d, nil
}
