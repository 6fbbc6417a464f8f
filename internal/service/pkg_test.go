package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/ingest"
	memorystorage "github.com/echoplay/echoplay/internal/storage/memory"
)

func apkPart(version string) UploadPackageRequest {
	return UploadPackageRequest{
		Version: version,
		Archive: ingest.Part{
			Field:       ingest.FieldApk,
			FileName:    "build.apk",
			ContentType: "application/vnd.android.package-archive",
			Content:     strings.NewReader("apk-" + version),
		},
	}
}

func TestPackageUploadAndLatest(t *testing.T) {
	store := memorystorage.New()
	svc := NewPackageService(ingest.New(store, nil), store, nil)
	ctx := context.Background()

	for _, v := range []string{"1.2.0", "1.10.0", "1.9.5"} {
		name, err := svc.Upload(ctx, apkPart(v))
		require.NoError(t, err)
		assert.Equal(t, "app-"+v+".apk", name)
	}

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.10.0", latest.Version)
	assert.Equal(t, "app-1.10.0.apk", latest.Name)

	pkgs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	assert.Equal(t, "1.10.0", pkgs[0].Version, "list is newest first")
}

func TestPackageLatestEmpty(t *testing.T) {
	store := memorystorage.New()
	svc := NewPackageService(ingest.New(store, nil), store, nil)

	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoneAvailable)
}

func TestPackageUploadRequiresVersion(t *testing.T) {
	store := memorystorage.New()
	svc := NewPackageService(ingest.New(store, nil), store, nil)

	req := apkPart("1.0.0")
	req.Version = ""
	_, err := svc.Upload(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}
