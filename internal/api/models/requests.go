package models

import "github.com/nrjt/eduplatform/internal/types"

// UploadRequest represents the request to apply an upload to a folder
type UploadRequest struct {
	FolderName string               `json:"folder_name" validate:"required"`
	Descriptor types.FileDescriptor `json:"descriptor"`
}
