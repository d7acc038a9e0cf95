// Package client defines the transport used by the intake view-model to talk
// to the Multi-Format Intake backend.
package client

import (
	"context"

	"github.com/mfintake/intakecli/internal/models"
)

type Client interface {
	Close() error
	// ProcessInput uploads the file bytes and the declared input type as
	// multipart form data and returns the decoded success body.
	ProcessInput(ctx context.Context, file models.SelectedFile, inputType models.InputType) (*models.UploadResult, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) error
	// SaveDataset persists the extraction of a previously uploaded file.
	SaveDataset(ctx context.Context, fileID string, extracted map[string]any) error
	Ping(ctx context.Context) error
}

// ExtractPath is the navigation target for a successfully processed upload.
func ExtractPath(fileID string) string {
	return "/api/extract/" + fileID
}
