package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/telkomindonesia/swagger-fixup/internal/contenttype"
	"github.com/telkomindonesia/swagger-fixup/internal/document"
	"github.com/telkomindonesia/swagger-fixup/internal/verify"
)

type options struct {
	path   string
	verify bool
	logger *slog.Logger
}

func fixFile(ctx context.Context, w io.Writer, opts options) error {
	doc, err := document.Load(opts.path)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Checking for binary content type issues...")
	changes := contenttype.Fix(doc.Root)
	if len(changes) == 0 {
		fmt.Fprintln(w, "No binary content type issues found")
		return nil
	}
	for _, c := range changes {
		fmt.Fprintf(w, "  fixed: %s\n", c)
	}

	if opts.verify {
		if err = verify.Document(ctx, doc.Root, opts.logger); err != nil {
			return fmt.Errorf("fail to verify fixed document: %w", err)
		}
	}

	backup, err := doc.Save()
	if backup != "" {
		fmt.Fprintf(w, "\nBackup created: %s\n", filepath.Base(backup))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Fixed %d binary content type issue(s)\n", len(changes))
	fmt.Fprintf(w, "Updated file: %s\n", doc.Path)
	return nil
}
