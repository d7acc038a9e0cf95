package cli

import (
	"context"
)

// Upload submits the selected file. On success it prints the extraction path
// the page would navigate to.
func (a *App) Upload(ctx context.Context) error {
	printlnFn("Uploading...")

	target, err := a.vm.Upload(ctx)
	if err != nil {
		if msg := a.vm.Snapshot().Err; msg != "" {
			printlnFn(msg)
		} else {
			printlnFn(err.Error())
		}
		return err
	}

	res := a.vm.LastResult()
	printlnFn("Processed", res.Filename, "- view results at", target)
	if intent, ok := res.Classification["intent"]; ok {
		printlnFn("Classified as:", intent)
	}
	return nil
}

// SaveDataset persists the extraction of an upload to the backend dataset.
// With no explicit id it uses the most recent successful upload.
func (a *App) SaveDataset(ctx context.Context, fileID string) error {
	var extracted map[string]any
	if res := a.vm.LastResult(); res != nil {
		if fileID == "" {
			fileID = res.FileID
		}
		if fileID == res.FileID {
			extracted = res.ExtractedData
		}
	}
	if fileID == "" {
		printlnFn("Nothing to save: upload a file first or pass a file id.")
		return nil
	}

	if err := a.vm.SaveDataset(ctx, fileID, extracted); err != nil {
		printlnFn(a.vm.Snapshot().Err)
		return err
	}
	printlnFn("Saved to dataset:", fileID)
	return nil
}
