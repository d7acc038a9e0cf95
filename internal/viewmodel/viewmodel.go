// Package viewmodel holds the UI-observable state of the intake page and the
// operations that mutate it in response to user and network events.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mfintake/intakecli/internal/client"
	"github.com/mfintake/intakecli/internal/logging"
	"github.com/mfintake/intakecli/internal/models"
)

// Fixed display messages. Errors shown to the user are plain strings; the
// backend is the real validation boundary.
const (
	MsgInvalidFileType   = "Invalid file type. Please select a PDF, JSON, TXT, or EML file."
	MsgNoFileSelected    = "Please select a file first."
	MsgUploadFailed      = "Error processing file."
	MsgNetworkError      = "Network error. Please check your connection and try again."
	MsgProfileSaveFailed = "Failed to update profile."
	MsgSaveDatasetFailed = "Failed to save to dataset."
)

var (
	ErrFileRejected   = errors.New("file type not allowed")
	ErrNoFileSelected = errors.New("no file selected")
	ErrBusy           = errors.New("another request is in progress")
)

// timeAfterFunc is a test seam for the success-banner hide timer.
var timeAfterFunc = time.AfterFunc

// State is a copy of the observable view state, safe to read without
// holding any lock.
type State struct {
	FileName         string
	InputType        models.InputType
	Loading          bool
	Err              string
	ShowProfileModal bool
	ShowSuccess      bool
	Profile          models.Profile
}

// ViewModel owns all page state for one session. At most one network request
// is in flight at a time; Upload, SaveProfile and SaveDataset reject
// overlapping calls with ErrBusy instead of relying on the UI to disable
// controls.
type ViewModel struct {
	api          client.Client
	log          logging.Logger
	successDelay time.Duration

	mu               sync.Mutex
	selected         *models.SelectedFile
	inputType        models.InputType
	loading          bool
	errMsg           string
	showProfileModal bool
	showSuccess      bool
	profile          models.Profile
	lastResult       *models.UploadResult

	cancelUpload context.CancelFunc
	hideTimer    *time.Timer
}

func New(api client.Client, log logging.Logger, successDelay time.Duration) *ViewModel {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ViewModel{api: api, log: log, successDelay: successDelay}
}

// Snapshot returns a copy of the current view state.
func (vm *ViewModel) Snapshot() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	s := State{
		InputType:        vm.inputType,
		Loading:          vm.loading,
		Err:              vm.errMsg,
		ShowProfileModal: vm.showProfileModal,
		ShowSuccess:      vm.showSuccess,
		Profile:          vm.profile,
	}
	if vm.selected != nil {
		s.FileName = vm.selected.Name
	}
	return s
}

// LastResult returns the decoded body of the most recent successful upload,
// or nil if none completed yet.
func (vm *ViewModel) LastResult() *models.UploadResult {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastResult
}

// SelectFile runs the two-tier allowed-type check on the candidate. On
// acceptance the candidate replaces the current selection, any prior error
// is cleared, and an in-flight upload for the old selection is aborted. On
// rejection the current selection is kept and the fixed validation message
// is set.
func (vm *ViewModel) SelectFile(candidate models.SelectedFile) error {
	inputType, ok := models.DetectInputType(candidate.MimeType, candidate.Name)
	if !ok {
		vm.mu.Lock()
		vm.errMsg = MsgInvalidFileType
		vm.mu.Unlock()
		return ErrFileRejected
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	// Abort-on-reselect: a stale response must not overwrite newer state.
	if vm.cancelUpload != nil {
		vm.cancelUpload()
		vm.cancelUpload = nil
	}

	vm.selected = &candidate
	vm.inputType = inputType
	vm.errMsg = ""
	return nil
}

// SetInputType overrides the declared content kind for the next upload,
// mirroring the type selector on the intake page.
func (vm *ViewModel) SetInputType(t models.InputType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown input type %q", t)
	}
	vm.mu.Lock()
	vm.inputType = t
	vm.mu.Unlock()
	return nil
}

// Upload submits the selected file to the intake endpoint and returns the
// navigation target (/api/extract/{file_id}) on success. With no file
// selected it sets an error message and no-ops. The loading flag is held for
// exactly the duration of the request and released on every exit path.
func (vm *ViewModel) Upload(ctx context.Context) (string, error) {
	vm.mu.Lock()
	if vm.selected == nil {
		vm.errMsg = MsgNoFileSelected
		vm.mu.Unlock()
		return "", ErrNoFileSelected
	}
	if vm.loading {
		vm.mu.Unlock()
		return "", ErrBusy
	}

	vm.loading = true
	vm.errMsg = ""
	file := *vm.selected
	inputType := vm.inputType

	uctx, cancel := context.WithCancel(ctx)
	vm.cancelUpload = cancel
	vm.mu.Unlock()

	res, err := vm.api.ProcessInput(uctx, file, inputType)
	aborted := uctx.Err() != nil && ctx.Err() == nil
	cancel()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading = false
	vm.cancelUpload = nil

	// An aborted attempt was superseded by a reselect; leave the fresh
	// state alone whether the stale response carried an error or a success.
	if aborted {
		vm.log.Debug(ctx, "upload aborted", "filename", file.Name)
		if err == nil {
			err = uctx.Err()
		}
		return "", err
	}

	if err != nil {
		var apiErr *client.APIError
		switch {
		case errors.As(err, &apiErr):
			vm.errMsg = apiErr.Detail
			if vm.errMsg == "" {
				vm.errMsg = MsgUploadFailed
			}
		case errors.Is(err, client.ErrUnavailable):
			vm.errMsg = MsgNetworkError
		default:
			vm.errMsg = MsgUploadFailed
		}
		return "", err
	}

	// Terminal success for this attempt: ownership of the file ends here.
	vm.selected = nil
	vm.lastResult = res
	vm.log.Info(ctx, "file processed", "file_id", res.FileID, "filename", res.Filename)
	return client.ExtractPath(res.FileID), nil
}

// LoadProfile refreshes the in-memory profile from the backend. Failures are
// logged and never surfaced; the previous profile stays in place.
func (vm *ViewModel) LoadProfile(ctx context.Context) {
	p, err := vm.api.GetProfile(ctx)
	if err != nil {
		vm.log.Warn(ctx, "profile refresh failed", "error", err)
		return
	}

	vm.mu.Lock()
	vm.profile = *p
	vm.mu.Unlock()
}

// EditProfile opens the profile modal. No validation, no network call.
func (vm *ViewModel) EditProfile() {
	vm.mu.Lock()
	vm.showProfileModal = true
	vm.mu.Unlock()
}

// SetProfile updates the editable fields of the in-memory record. The role
// is backend-owned and kept as is.
func (vm *ViewModel) SetProfile(username, email string) {
	vm.mu.Lock()
	vm.profile.Username = username
	vm.profile.Email = email
	vm.mu.Unlock()
}

// SaveProfile sends the current in-memory profile as the full replacement
// body. On success the modal closes and the success banner shows, auto-hiding
// after the configured delay; a pending hide from an earlier save is
// cancelled first. On failure the modal stays open and a fixed message is
// set.
func (vm *ViewModel) SaveProfile(ctx context.Context) error {
	vm.mu.Lock()
	if vm.loading {
		vm.mu.Unlock()
		return ErrBusy
	}
	vm.loading = true
	vm.errMsg = ""
	profile := vm.profile
	vm.mu.Unlock()

	err := vm.api.UpdateProfile(ctx, profile)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading = false

	if err != nil {
		vm.errMsg = MsgProfileSaveFailed
		return err
	}

	vm.showProfileModal = false
	vm.showSuccess = true

	if vm.hideTimer != nil {
		vm.hideTimer.Stop()
	}
	vm.hideTimer = timeAfterFunc(vm.successDelay, func() {
		vm.mu.Lock()
		vm.showSuccess = false
		vm.mu.Unlock()
	})
	return nil
}

// SaveDataset persists the extraction of a previously processed upload.
func (vm *ViewModel) SaveDataset(ctx context.Context, fileID string, extracted map[string]any) error {
	vm.mu.Lock()
	if vm.loading {
		vm.mu.Unlock()
		return ErrBusy
	}
	vm.loading = true
	vm.errMsg = ""
	vm.mu.Unlock()

	err := vm.api.SaveDataset(ctx, fileID, extracted)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading = false

	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			vm.errMsg = apiErr.Detail
		} else {
			vm.errMsg = MsgSaveDatasetFailed
		}
		return err
	}
	return nil
}

// Logout signals intent to end the session. The backend has no session to
// end yet, so this only logs.
func (vm *ViewModel) Logout(ctx context.Context) {
	vm.log.Info(ctx, "logout requested")
}

// Close aborts any in-flight upload and stops the banner timer.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.cancelUpload != nil {
		vm.cancelUpload()
		vm.cancelUpload = nil
	}
	if vm.hideTimer != nil {
		vm.hideTimer.Stop()
		vm.hideTimer = nil
	}
}
