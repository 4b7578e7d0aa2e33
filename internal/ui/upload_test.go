package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrjt/eduplatform/internal/types"
)

type uploadCall struct {
	folder string
	desc   types.FileDescriptor
}

func newTestFlow(kind types.Kind) (*UploadFlow, *[]uploadCall) {
	calls := &[]uploadCall{}
	now := func() time.Time { return time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC) }
	flow := NewUploadFlow(kind, func(folder string, desc types.FileDescriptor) {
		*calls = append(*calls, uploadCall{folder, desc})
	}, UploadOptions{Now: now})
	return flow, calls
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 MB"},
		{2097152, "2.00 MB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{123456789, "117.74 MB"},
		{1024, "0.00 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestSelectFileOpensUploadMode(t *testing.T) {
	flow, _ := newTestFlow(types.KindDocument)
	require.False(t, flow.ModalOpen())

	flow.SelectFile(&PlatformFile{Name: "notes.pdf", Size: 2097152})

	assert.True(t, flow.ModalOpen())
	assert.Equal(t, ModeUploadToFolder, flow.Mode())
	out := flow.Render()
	assert.Equal(t, "Upload to Folder", out.Title)
	assert.Equal(t, "Upload to Folder", out.SubmitLabel)
	assert.Equal(t, "notes.pdf", out.SelectedFile)
}

func TestSelectNilFileIsIgnored(t *testing.T) {
	flow, _ := newTestFlow(types.KindDocument)
	flow.SelectFile(nil)
	assert.False(t, flow.ModalOpen())
}

func TestCreateFolderClearsStagedFile(t *testing.T) {
	flow, _ := newTestFlow(types.KindVideo)
	flow.SelectFile(&PlatformFile{Name: "a.mp4", Size: 10})
	flow.OpenCreateFolder()

	assert.True(t, flow.ModalOpen())
	assert.Nil(t, flow.Draft().SelectedFile)
	assert.Equal(t, ModeCreateFolder, flow.Mode())
	out := flow.Render()
	assert.Equal(t, "Create New Folder", out.Title)
	assert.Equal(t, "Create Folder", out.SubmitLabel)
	assert.Empty(t, out.SelectedFile)
}

func TestSubmitWithoutFolderNameIsNoop(t *testing.T) {
	flow, calls := newTestFlow(types.KindDocument)
	flow.SelectFile(&PlatformFile{Name: "notes.pdf", Size: 1})
	flow.SetReferenceLink("https://ref")

	err := flow.Submit()
	assert.ErrorIs(t, err, ErrFolderNameRequired)
	assert.Empty(t, *calls)
	assert.True(t, flow.ModalOpen())

	draft := flow.Draft()
	require.NotNil(t, draft.SelectedFile)
	assert.Equal(t, "https://ref", draft.ReferenceLink)
}

func TestSubmitAttachedFile(t *testing.T) {
	flow, calls := newTestFlow(types.KindDocument)
	flow.SelectFile(&PlatformFile{Name: "notes.pdf", Size: 2097152})
	flow.SetFolderName("Chapter 1")

	require.NoError(t, flow.Submit())
	require.Len(t, *calls, 1)

	call := (*calls)[0]
	assert.Equal(t, "Chapter 1", call.folder)
	assert.Equal(t, types.DescriptorAttached, call.desc.Kind())
	file, ok := call.desc.File()
	require.True(t, ok)
	assert.Equal(t, types.FileEntry{
		Name: "notes.pdf",
		Size: "2.00 MB",
		Date: "10/15/2026",
		Type: types.KindDocument,
		Link: "",
	}, file)

	assert.False(t, flow.ModalOpen())
	assert.Equal(t, UploadDraft{}, flow.Draft())
}

func TestSubmitLinkOnly(t *testing.T) {
	flow, calls := newTestFlow(types.KindVideo)
	flow.OpenCreateFolder()
	flow.SetFolderName("Links")
	flow.SetReferenceLink("https://ref")

	require.NoError(t, flow.Submit())
	require.Len(t, *calls, 1)
	assert.Equal(t, "Links", (*calls)[0].folder)
	assert.Equal(t, types.LinkOnly("https://ref"), (*calls)[0].desc)

	_, ok := (*calls)[0].desc.File()
	assert.False(t, ok)
}

func TestSubmitFolderOnlyWithEmptyLink(t *testing.T) {
	flow, calls := newTestFlow(types.KindVideo)
	flow.OpenCreateFolder()
	flow.SetFolderName("Empty")

	require.NoError(t, flow.Submit())
	require.Len(t, *calls, 1)
	assert.Equal(t, types.DescriptorLinkOnly, (*calls)[0].desc.Kind())
	assert.Equal(t, "", (*calls)[0].desc.Link())
}

func TestAttachedFileCarriesReferenceLink(t *testing.T) {
	flow, calls := newTestFlow(types.KindVideo)
	flow.SelectFile(&PlatformFile{Name: "lecture.mp4", Size: 5 * 1048576})
	flow.SetFolderName("Week 1")
	flow.SetReferenceLink("https://youtube.com/watch?v=1")

	require.NoError(t, flow.Submit())
	file, ok := (*calls)[0].desc.File()
	require.True(t, ok)
	assert.Equal(t, "5.00 MB", file.Size)
	assert.Equal(t, types.KindVideo, file.Type)
	assert.Equal(t, "https://youtube.com/watch?v=1", file.Link)
}

func TestCancelDiscardsDraft(t *testing.T) {
	stages := map[string]func(*UploadFlow){
		"staged file": func(f *UploadFlow) {
			f.SelectFile(&PlatformFile{Name: "a.pdf", Size: 1})
			f.SetFolderName("A")
			f.SetReferenceLink("https://a")
		},
		"create folder": func(f *UploadFlow) {
			f.OpenCreateFolder()
			f.SetFolderName("B")
		},
		"closed": func(*UploadFlow) {},
	}

	for name, stage := range stages {
		t.Run(name, func(t *testing.T) {
			flow, calls := newTestFlow(types.KindDocument)
			stage(flow)
			flow.Cancel()

			assert.Empty(t, *calls)
			assert.False(t, flow.ModalOpen())
			assert.Equal(t, UploadDraft{}, flow.Draft())
		})
	}
}

func TestDraftIsACopy(t *testing.T) {
	flow, _ := newTestFlow(types.KindDocument)
	flow.SelectFile(&PlatformFile{Name: "a.pdf", Size: 1})

	draft := flow.Draft()
	draft.SelectedFile.Name = "changed.pdf"
	assert.Equal(t, "a.pdf", flow.Draft().SelectedFile.Name)
}

func TestRenderCardLabels(t *testing.T) {
	video, _ := newTestFlow(types.KindVideo)
	doc, _ := newTestFlow(types.KindDocument)

	v := video.Render()
	assert.Equal(t, "Upload Video", v.Label)
	assert.Equal(t, "Drag & drop video files here", v.SubLabel)
	assert.Equal(t, "video/*", v.Accept)

	d := doc.Render()
	assert.Equal(t, "Upload PDF", d.Label)
	assert.Equal(t, "Drag & drop PDF files here", d.SubLabel)
	assert.Equal(t, ".pdf", d.Accept)
	assert.False(t, d.ModalOpen)
}

func TestDefaultDateLayout(t *testing.T) {
	var got types.FileDescriptor
	flow := NewUploadFlow(types.KindDocument, func(_ string, d types.FileDescriptor) { got = d }, UploadOptions{
		Now: func() time.Time { return time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC) },
	})
	flow.SelectFile(&PlatformFile{Name: "x.pdf"})
	flow.SetFolderName("X")
	require.NoError(t, flow.Submit())

	file, _ := got.File()
	assert.Equal(t, "3/4/2026", file.Date)
}
