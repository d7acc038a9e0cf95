package cli

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/mfintake/intakecli/internal/models"
)

// Select reads the file at path and offers it to the view-model, the CLI
// equivalent of the page's file picker. The media type is derived from the
// extension and may well be empty (notably for .eml), which is exactly the
// case the extension fallback exists for.
func (a *App) Select(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	candidate := models.SelectedFile{
		Name:     filepath.Base(path),
		MimeType: mime.TypeByExtension(filepath.Ext(path)),
		Content:  data,
	}

	if err := a.vm.SelectFile(candidate); err != nil {
		printlnFn(a.vm.Snapshot().Err)
		return err
	}

	s := a.vm.Snapshot()
	printlnFn("Selected", s.FileName, "as", string(s.InputType))
	return nil
}

// SetType overrides the declared input type for the next upload.
func (a *App) SetType(ctx context.Context, inputType string) error {
	if err := a.vm.SetInputType(models.InputType(inputType)); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Input type set to", inputType)
	return nil
}
