package filerenamer

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const DefaultDirPermissions = 0o755

type Renamer interface {
	ComputeNewName(filename string, counter int, rules Rules) string
	Plan(ctx context.Context, inputDir, outputDir string, rules Rules) ([]Mapping, error)
	Run(ctx context.Context, inputDir, outputDir string, rules Rules, mode Mode) (*Report, error)
}

type ExecutorOptions struct {
	// Fs defaults to the operating system filesystem.
	Fs afero.Fs
	// ExcludePatterns are doublestar globs matched against base names.
	ExcludePatterns []string
	// Logger defaults to the logger attached to the context passed to Run.
	Logger *zerolog.Logger
}

type Executor struct {
	fs        afero.Fs
	lister    Lister
	validator Validator
	log       *zerolog.Logger
}

func NewExecutor(opts ExecutorOptions) (*Executor, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	validator := NewDefaultValidator(fs)
	if err := validator.ValidatePatterns(opts.ExcludePatterns); err != nil {
		return nil, err
	}

	return &Executor{
		fs:        fs,
		lister:    NewFilesystemLister(fs, opts.ExcludePatterns),
		validator: validator,
		log:       opts.Logger,
	}, nil
}

func (e *Executor) ComputeNewName(filename string, counter int, rules Rules) string {
	return ComputeNewName(filename, counter, rules)
}

// Plan returns the mappings Run would act on without touching the filesystem.
func (e *Executor) Plan(ctx context.Context, inputDir, outputDir string, rules Rules) ([]Mapping, error) {
	report, err := e.Run(ctx, inputDir, outputDir, rules, ModePreview)
	if err != nil {
		return nil, err
	}
	return report.Mappings(), nil
}

// Run renames or copies every file of inputDir according to rules. Fatal
// problems are returned as errors before any file is touched; per-file
// failures are recorded in the report and never stop the batch. The context
// is only consulted before the batch starts.
func (e *Executor) Run(ctx context.Context, inputDir, outputDir string, rules Rules, mode Mode) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	if mode != ModePreview && mode != ModeExecute {
		return nil, errors.Errorf("%w: unknown mode %q", ErrInvalidConfig, mode)
	}

	if err := e.validator.ValidateRules(rules); err != nil {
		return nil, err
	}

	if err := e.validator.ValidateDirectory(inputDir); err != nil {
		return nil, err
	}

	files, err := e.lister.ListFiles(inputDir)
	if err != nil {
		return nil, err
	}

	log := e.logger(ctx)
	destDir, op := destination(inputDir, outputDir)

	if mode == ModeExecute && op == OpCopy {
		if err := e.prepareOutputDir(destDir); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("input_dir", inputDir).
		Str("dest_dir", destDir).
		Str("op", string(op)).
		Str("mode", string(mode)).
		Int("files", len(files)).
		Msg("starting batch")

	report := &Report{
		Mode:    mode,
		Entries: make([]ReportEntry, 0, len(files)),
	}

	counter := 0
	for _, file := range files {
		newName := ComputeNewName(file.Name, counter, rules)
		if rules.RenumberEnabled {
			counter++
		}

		entry := e.apply(Mapping{
			OriginalName: file.Name,
			NewName:      newName,
			SourcePath:   filepath.Join(inputDir, file.Name),
			DestPath:     filepath.Join(destDir, newName),
			Op:           op,
		}, mode)

		if entry.Outcome == OutcomeFailed {
			log.Warn().
				Err(entry.Err).
				Str("file", entry.OriginalName).
				Str("new_name", entry.NewName).
				Msg("file operation failed")
		} else {
			log.Debug().
				Str("file", entry.OriginalName).
				Str("new_name", entry.NewName).
				Str("outcome", string(entry.Outcome)).
				Msg("file processed")
		}

		report.Entries = append(report.Entries, entry)
	}

	log.Info().
		Int("renamed", report.Count(OutcomeRenamed)).
		Int("planned", report.Count(OutcomePlanned)).
		Int("skipped", report.Count(OutcomeSkipped)).
		Int("failed", report.Count(OutcomeFailed)).
		Msg("batch complete")

	return report, nil
}

func (e *Executor) apply(m Mapping, mode Mode) ReportEntry {
	entry := ReportEntry{Mapping: m}

	if m.NewName == m.OriginalName {
		entry.Outcome = OutcomeSkipped
		entry.Reason = ReasonUnchanged
		return entry
	}

	if err := e.validator.ValidateName(m.NewName); err != nil {
		return failed(entry, err)
	}

	if mode == ModePreview {
		entry.Outcome = OutcomePlanned
		return entry
	}

	var err error
	switch m.Op {
	case OpCopy:
		err = e.copyFile(m.SourcePath, m.DestPath)
	default:
		err = e.renameFile(m.SourcePath, m.DestPath)
	}
	if err != nil {
		return failed(entry, err)
	}

	entry.Outcome = OutcomeRenamed
	return entry
}

func failed(entry ReportEntry, err error) ReportEntry {
	entry.Outcome = OutcomeFailed
	entry.Err = err
	entry.Error = err.Error()
	return entry
}

func (e *Executor) renameFile(src, dst string) error {
	if err := e.checkDestination(src, dst); err != nil {
		return err
	}

	if err := e.fs.Rename(src, dst); err != nil {
		return errors.Errorf("%w: rename %s: %s", ErrPerFileIO, filepath.Base(src), err)
	}
	return nil
}

// copyFile copies src to dst keeping the permission bits and modification
// time of src. A partially written dst is removed.
func (e *Executor) copyFile(src, dst string) (err error) {
	if err := e.checkDestination(src, dst); err != nil {
		return err
	}

	in, err := e.fs.Open(src)
	if err != nil {
		return errors.Errorf("%w: open %s: %s", ErrPerFileIO, filepath.Base(src), err)
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("%w: stat %s: %s", ErrPerFileIO, filepath.Base(src), err)
	}

	out, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("%w: create %s: %s", ErrPerFileIO, filepath.Base(dst), err)
	}
	defer func() {
		if err != nil {
			_ = e.fs.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Errorf("%w: copy %s: %s", ErrPerFileIO, filepath.Base(src), err)
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("%w: close %s: %s", ErrPerFileIO, filepath.Base(dst), err)
	}

	if err := e.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("%w: chmod %s: %s", ErrPerFileIO, filepath.Base(dst), err)
	}

	if err := e.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("%w: chtimes %s: %s", ErrPerFileIO, filepath.Base(dst), err)
	}

	return nil
}

// checkDestination refuses to overwrite an existing file. A destination that
// is the source itself (a case-only rename on a case-insensitive filesystem)
// is allowed.
func (e *Executor) checkDestination(src, dst string) error {
	dstInfo, err := e.fs.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf("%w: stat %s: %s", ErrPerFileIO, filepath.Base(dst), err)
	}

	if srcInfo, err := e.fs.Stat(src); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	return errors.Errorf("%w: %s", ErrDestinationExists, dst)
}

func (e *Executor) prepareOutputDir(dir string) error {
	if err := e.fs.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return errors.Errorf("%w: %s: %s", ErrOutputDirUnavailable, dir, err)
	}

	info, err := e.fs.Stat(dir)
	if err != nil {
		return errors.Errorf("%w: %s: %s", ErrOutputDirUnavailable, dir, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrOutputDirUnavailable, dir)
	}

	return nil
}

func (e *Executor) logger(ctx context.Context) *zerolog.Logger {
	if e.log != nil {
		return e.log
	}
	return zerolog.Ctx(ctx)
}

// destination picks where renamed files go. A configured output directory
// other than the input directory turns renames into copies.
func destination(inputDir, outputDir string) (string, Operation) {
	if outputDir == "" || filepath.Clean(outputDir) == filepath.Clean(inputDir) {
		return inputDir, OpRename
	}
	return outputDir, OpCopy
}
