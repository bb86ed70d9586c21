package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/failure"
	"github.com/terroirai/terroir-web/pkg/fileutil"
	"github.com/terroirai/terroir-web/pkg/hashutil"
	"github.com/terroirai/terroir-web/pkg/urlutil"
)

/*
Responsibilities
- Persist prerendered pages
- Map route paths to a static-host friendly layout
- Hash page content so unchanged pages are recognizable across builds

Output Characteristics
- "/" is written to <outputDir>/index.html
- "/contact" is written to <outputDir>/contact/index.html
- Writes are atomic and overwrite-safe on reruns
*/

type Sink interface {
	Write(
		outputDir string,
		page RenderedPage,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	page RenderedPage,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, page, hashAlgo)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPath, page.RoutePath()),
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
			},
		)
		return WriteResult{}, err
	}
	s.metadataSink.RecordArtifact(
		metadata.ArtifactPrerenderedPage,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, writeResult.RoutePath()),
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	page RenderedPage,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	routePath := urlutil.CleanPath(page.RoutePath())
	relative, ok := routeFile(routePath)
	if !ok {
		return WriteResult{}, &StorageError{
			Message: "route path escapes the output directory",
			Cause:   ErrCausePathError,
			Path:    routePath,
		}
	}

	contentHash, err := hashutil.HashBytes(page.Content(), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseHashComputationFailed,
		}
	}

	fullPath := filepath.Join(outputDir, relative)
	if err := fileutil.WriteFileAtomic(fullPath, page.Content()); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		// disk full is retryable once space is freed
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) && fileErr.Cause == fileutil.ErrCausePathError {
			cause = ErrCausePathError
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      fullPath,
		}
	}

	return NewWriteResult(routePath, fullPath, contentHash), nil
}

// routeFile maps a cleaned route path to a relative file path.
func routeFile(routePath string) (string, bool) {
	segments := strings.Split(strings.Trim(routePath, "/"), "/")
	for _, segment := range segments {
		if segment == ".." || segment == "." || strings.ContainsRune(segment, '\\') {
			return "", false
		}
	}
	if routePath == "/" {
		return "index.html", true
	}
	return filepath.Join(append(segments, "index.html")...), true
}
