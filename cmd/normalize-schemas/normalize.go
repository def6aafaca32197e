package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/telkomindonesia/swagger-fixup/internal/config"
	"github.com/telkomindonesia/swagger-fixup/internal/document"
	"github.com/telkomindonesia/swagger-fixup/internal/normalize"
	"github.com/telkomindonesia/swagger-fixup/internal/schemaname"
	"github.com/telkomindonesia/swagger-fixup/internal/verify"
)

type options struct {
	path   string
	config string
	dryRun bool
	verify bool
	logger *slog.Logger
}

func normalizeFile(ctx context.Context, w io.Writer, opts options) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	doc, err := document.Load(opts.path)
	if err != nil {
		return err
	}
	n := normalize.New(schemaname.New(cfg))

	fmt.Fprintln(w, "Finding schemas to rename...")
	if opts.dryRun {
		renames, err := n.Plan(doc.Root)
		if err != nil {
			return fmt.Errorf("fail to plan schema renames: %w", err)
		}
		report(w, renames.List())
		if renames.Len() == 0 {
			fmt.Fprintln(w, "No schemas need renaming")
			return nil
		}
		fmt.Fprintf(w, "\nDry run: would rename %d schemas\n", renames.Len())
		return nil
	}

	res, err := n.Normalize(ctx, doc.Root)
	if err != nil {
		return err
	}
	report(w, res.Renames)
	if len(res.Renames) == 0 {
		fmt.Fprintln(w, "No schemas need renaming")
		return nil
	}

	if opts.verify {
		if err = verify.Document(ctx, doc.Root, opts.logger); err != nil {
			return fmt.Errorf("fail to verify normalized document: %w", err)
		}
	}

	backup, err := doc.Save()
	if backup != "" {
		fmt.Fprintf(w, "\nBackup created: %s\n", filepath.Base(backup))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Normalized %d schema names, rewrote %d references\n", len(res.Renames), res.Refs)
	fmt.Fprintf(w, "Updated file: %s\n", doc.Path)
	return nil
}

func report(w io.Writer, renames []schemaname.Rename) {
	for _, r := range renames {
		fmt.Fprintf(w, "  %s (%s)\n     -> %s [%s]\n", truncate(r.Old, 80), r.Reason, r.New, r.Rule)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
