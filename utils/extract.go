package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archiver/v4"
)

type archiveHandle struct {
	reader     io.Reader
	readCloser io.ReadCloser
	extractor  archiver.Extractor
}

func openArchive(f *os.File, src string) (*archiveHandle, error) {
	format, archiveReader, err := archiver.Identify(
		filepath.Base(src),
		f,
	)
	if err == archiver.ErrNoMatch {
		return nil, fmt.Errorf(
			"error %d: %s is not a supported archive file",
			OS_ERROR,
			src,
		)
	} else if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	if decom, ok := format.(archiver.Decompressor); ok {
		rc, err = decom.OpenReader(archiveReader)
		if err != nil {
			return nil, err
		}
	}

	ex, ok := format.(archiver.Extractor)
	if !ok {
		return nil, fmt.Errorf(
			"error %d: unable to extract archive file %s, more info => %v",
			UNEXPECTED_ERROR,
			src,
			err,
		)
	}
	return &archiveHandle{
		reader:     archiveReader,
		readCloser: rc,
		extractor:  ex,
	}, nil
}

func extractArchive(ctx context.Context, src, dest string, handle *archiveHandle) error {
	handler := func(ctx context.Context, file archiver.File) error {
		extractedFilePath := filepath.Join(dest, file.NameInArchive)
		os.MkdirAll(filepath.Dir(extractedFilePath), 0755)

		af, err := file.Open()
		if err != nil {
			return err
		}
		defer af.Close()

		out, err := os.OpenFile(
			extractedFilePath,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			file.Mode(),
		)
		if err != nil {
			return err
		}
		defer out.Close()

		_, err = io.Copy(out, af)
		if err != nil {
			return err
		}
		return nil
	}

	var input io.Reader
	if handle.readCloser != nil {
		input = handle.readCloser
	} else {
		input = handle.reader
	}

	err := handle.extractor.Extract(ctx, input, nil, handler)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// remove the partially extracted files
			if rmErr := os.RemoveAll(dest); rmErr != nil {
				LogError(rmErr, "", false, ERROR)
			}
			return err
		}
		return fmt.Errorf(
			"error %d: unable to extract archive file %s, more info => %v",
			OS_ERROR,
			src,
			err,
		)
	}
	return nil
}

// Extract all files from the given archive file to the given destination folder.
func ExtractFiles(ctx context.Context, src, dest string, ignoreIfMissing bool) error {
	if !PathExists(src) {
		if ignoreIfMissing {
			return nil
		}
		return fmt.Errorf(
			"error %d: %s does not exist",
			OS_ERROR,
			src,
		)
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(
			"error %d: unable to open archive file %s",
			OS_ERROR,
			src,
		)
	}
	defer f.Close()

	handle, err := openArchive(f, src)
	if err != nil {
		return err
	}
	if handle.readCloser != nil {
		defer handle.readCloser.Close()
	}
	return extractArchive(ctx, src, dest, handle)
}
