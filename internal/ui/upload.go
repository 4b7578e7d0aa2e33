package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nrjt/eduplatform/internal/types"
)

// ErrFolderNameRequired is returned by Submit when the draft has no folder name
var ErrFolderNameRequired = errors.New("folder name is required")

const bytesPerMB = 1024 * 1024

// FormatSize renders a byte count as megabytes with two decimals
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/bytesPerMB)
}

// PlatformFile is what the file picker hands over: a name and a size in bytes
type PlatformFile struct {
	Name string
	Size int64
}

// UploadDraft is the form state staged inside the modal
type UploadDraft struct {
	FolderName    string `validate:"required"`
	ReferenceLink string
	SelectedFile  *PlatformFile
}

// ModalMode tells which action opened the modal
type ModalMode string

// ModalMode constants
const (
	ModeUploadToFolder ModalMode = "upload"
	ModeCreateFolder   ModalMode = "create"
)

// UploadHandler receives a submitted upload. It is owned by the host.
type UploadHandler func(folderName string, desc types.FileDescriptor)

// UploadOptions configures an UploadFlow
type UploadOptions struct {
	Now        func() time.Time
	DateLayout string
	Validate   *validator.Validate
}

var defaultValidate = validator.New()

// UploadFlow stages a file pick or a folder creation in a modal and hands the
// resulting descriptor to the host on submit.
type UploadFlow struct {
	kind     types.Kind
	onUpload UploadHandler
	now      func() time.Time
	layout   string
	validate *validator.Validate

	modalOpen bool
	draft     UploadDraft
}

// NewUploadFlow creates an upload flow for one kind
func NewUploadFlow(kind types.Kind, onUpload UploadHandler, opts UploadOptions) *UploadFlow {
	f := &UploadFlow{
		kind:     kind,
		onUpload: onUpload,
		now:      opts.Now,
		layout:   opts.DateLayout,
		validate: opts.Validate,
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.layout == "" {
		f.layout = "1/2/2006"
	}
	if f.validate == nil {
		f.validate = defaultValidate
	}
	return f
}

// SelectFile stages a picked file and opens the modal in upload mode.
// A nil file (picker dismissed) changes nothing.
func (f *UploadFlow) SelectFile(file *PlatformFile) {
	if file == nil {
		return
	}
	picked := *file
	f.draft.SelectedFile = &picked
	f.modalOpen = true
}

// OpenCreateFolder drops any staged file and opens the modal in create mode
func (f *UploadFlow) OpenCreateFolder() {
	f.draft.SelectedFile = nil
	f.modalOpen = true
}

// SetFolderName edits the folder name of the draft
func (f *UploadFlow) SetFolderName(name string) {
	f.draft.FolderName = name
}

// SetReferenceLink edits the reference link of the draft
func (f *UploadFlow) SetReferenceLink(link string) {
	f.draft.ReferenceLink = link
}

// Submit hands the draft to the host and resets the flow. With an empty
// folder name nothing happens: the modal stays open and ErrFolderNameRequired
// is returned.
func (f *UploadFlow) Submit() error {
	if err := f.validate.Struct(f.draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrFolderNameRequired
		}
		return fmt.Errorf("validating upload draft: %w", err)
	}

	folderName := f.draft.FolderName
	desc := f.descriptor()

	if f.onUpload != nil {
		f.onUpload(folderName, desc)
	}
	f.reset()
	return nil
}

func (f *UploadFlow) descriptor() types.FileDescriptor {
	file := f.draft.SelectedFile
	if file == nil {
		return types.LinkOnly(f.draft.ReferenceLink)
	}
	return types.Attached(types.FileEntry{
		Name: file.Name,
		Size: FormatSize(file.Size),
		Date: f.now().Format(f.layout),
		Type: f.kind,
		Link: f.draft.ReferenceLink,
	})
}

// Cancel discards the draft and closes the modal without uploading
func (f *UploadFlow) Cancel() {
	f.reset()
}

func (f *UploadFlow) reset() {
	f.draft = UploadDraft{}
	f.modalOpen = false
}

// Draft returns a copy of the staged form state
func (f *UploadFlow) Draft() UploadDraft {
	d := f.draft
	if d.SelectedFile != nil {
		file := *d.SelectedFile
		d.SelectedFile = &file
	}
	return d
}

// ModalOpen reports whether the modal is shown
func (f *UploadFlow) ModalOpen() bool {
	return f.modalOpen
}

// Mode returns the modal mode, derived from whether a file is staged
func (f *UploadFlow) Mode() ModalMode {
	if f.draft.SelectedFile != nil {
		return ModeUploadToFolder
	}
	return ModeCreateFolder
}

// UploadRender is the display model of the upload card and its modal
type UploadRender struct {
	Kind     types.Kind
	Icon     string
	Label    string
	SubLabel string
	Accept   string

	ModalOpen     bool
	Mode          ModalMode
	Title         string
	SubmitLabel   string
	FolderName    string
	ReferenceLink string
	SelectedFile  string // name of the staged file, empty when none
}

// Render builds the display model of the flow
func (f *UploadFlow) Render() UploadRender {
	out := UploadRender{
		Kind:          f.kind,
		Accept:        f.kind.Accept(),
		ModalOpen:     f.modalOpen,
		Mode:          f.Mode(),
		FolderName:    f.draft.FolderName,
		ReferenceLink: f.draft.ReferenceLink,
	}

	if f.kind.IsVideo() {
		out.Icon = "video"
		out.Label = "Upload Video"
		out.SubLabel = "Drag & drop video files here"
	} else {
		out.Icon = "file-text"
		out.Label = "Upload PDF"
		out.SubLabel = "Drag & drop PDF files here"
	}

	if out.Mode == ModeUploadToFolder {
		out.Title = "Upload to Folder"
		out.SubmitLabel = "Upload to Folder"
		out.SelectedFile = f.draft.SelectedFile.Name
	} else {
		out.Title = "Create New Folder"
		out.SubmitLabel = "Create Folder"
	}
	return out
}
