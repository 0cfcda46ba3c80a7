package proto

import "google.golang.org/protobuf/encoding/protowire"

// File is a node of an owner's file tree. Parent and ParentObject form a
// oneof; ParentObject is written when both are set.
type File struct {
	ID           string
	Key          string
	Name         string
	Type         string
	Description  string
	OwnerID      string
	Size         uint64
	Parent       string
	ParentObject *File
	Bucket       string
	// CreatedAt and UpdatedAt are unix milliseconds.
	CreatedAt int64
	UpdatedAt int64
	TargetID  string
}

func (m *File) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Key)
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Type)
	b = appendString(b, 5, m.Description)
	b = appendString(b, 6, m.OwnerID)
	b = appendUint64(b, 7, m.Size)
	if m.ParentObject != nil {
		b = appendMessage(b, 9, m.ParentObject)
	} else {
		b = appendString(b, 8, m.Parent)
	}
	b = appendString(b, 10, m.Bucket)
	b = appendInt64(b, 11, m.CreatedAt)
	b = appendInt64(b, 12, m.UpdatedAt)
	b = appendString(b, 13, m.TargetID)
	return b
}

func (m *File) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.Key)
		case 3:
			return consumeString(typ, b, &m.Name)
		case 4:
			return consumeString(typ, b, &m.Type)
		case 5:
			return consumeString(typ, b, &m.Description)
		case 6:
			return consumeString(typ, b, &m.OwnerID)
		case 7:
			return consumeUint64(typ, b, &m.Size)
		case 8:
			m.ParentObject = nil
			return consumeString(typ, b, &m.Parent)
		case 9:
			m.Parent = ""
			m.ParentObject = &File{}
			return consumeMessage(typ, b, m.ParentObject)
		case 10:
			return consumeString(typ, b, &m.Bucket)
		case 11:
			return consumeInt64(typ, b, &m.CreatedAt)
		case 12:
			return consumeInt64(typ, b, &m.UpdatedAt)
		case 13:
			return consumeString(typ, b, &m.TargetID)
		}
		return skip, nil
	})
}

// ParentID returns the parent id from whichever oneof member is set.
func (m *File) ParentID() string {
	if m.ParentObject != nil {
		return m.ParentObject.ID
	}
	return m.Parent
}

type GenerateKeyRequest struct{}

func (m *GenerateKeyRequest) appendWire(b []byte) []byte { return b }
func (m *GenerateKeyRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return skip, nil })
}

type GenerateKeyResponse struct {
	Key string
}

func (m *GenerateKeyResponse) appendWire(b []byte) []byte { return appendString(b, 1, m.Key) }
func (m *GenerateKeyResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Key)
		}
		return skip, nil
	})
}

type CreateUploadRequest struct {
	Bucket   string
	Name     string
	OwnerID  string
	Parent   string
	Size     uint64
	IsUpdate bool
	FileID   string
}

func (m *CreateUploadRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Bucket)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.OwnerID)
	b = appendString(b, 4, m.Parent)
	b = appendUint64(b, 5, m.Size)
	b = appendBool(b, 6, m.IsUpdate)
	b = appendString(b, 7, m.FileID)
	return b
}

func (m *CreateUploadRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Bucket)
		case 2:
			return consumeString(typ, b, &m.Name)
		case 3:
			return consumeString(typ, b, &m.OwnerID)
		case 4:
			return consumeString(typ, b, &m.Parent)
		case 5:
			return consumeUint64(typ, b, &m.Size)
		case 6:
			return consumeBool(typ, b, &m.IsUpdate)
		case 7:
			return consumeString(typ, b, &m.FileID)
		}
		return skip, nil
	})
}

type CreateUploadResponse struct {
	Key    string
	Bucket string
}

func (m *CreateUploadResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Key)
	return appendString(b, 2, m.Bucket)
}

func (m *CreateUploadResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Key)
		case 2:
			return consumeString(typ, b, &m.Bucket)
		}
		return skip, nil
	})
}

type UpdateUploadIDRequest struct {
	Key      string
	UploadID string
	Bucket   string
}

func (m *UpdateUploadIDRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Key)
	b = appendString(b, 2, m.UploadID)
	return appendString(b, 3, m.Bucket)
}

func (m *UpdateUploadIDRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Key)
		case 2:
			return consumeString(typ, b, &m.UploadID)
		case 3:
			return consumeString(typ, b, &m.Bucket)
		}
		return skip, nil
	})
}

// Empty is the response of calls that return nothing.
type Empty struct{}

func (m *Empty) appendWire(b []byte) []byte { return b }
func (m *Empty) consumeWire(b []byte) error {
	return consumeFields(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return skip, nil })
}

type GetUploadByIDRequest struct {
	UploadID string
}

func (m *GetUploadByIDRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.UploadID) }
func (m *GetUploadByIDRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.UploadID)
		}
		return skip, nil
	})
}

type GetUploadByIDResponse struct {
	Key      string
	Bucket   string
	UploadID string
	Name     string
}

func (m *GetUploadByIDResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Key)
	b = appendString(b, 2, m.Bucket)
	b = appendString(b, 3, m.UploadID)
	return appendString(b, 4, m.Name)
}

func (m *GetUploadByIDResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Key)
		case 2:
			return consumeString(typ, b, &m.Bucket)
		case 3:
			return consumeString(typ, b, &m.UploadID)
		case 4:
			return consumeString(typ, b, &m.Name)
		}
		return skip, nil
	})
}

type DeleteUploadByIDRequest struct {
	UploadID string
}

func (m *DeleteUploadByIDRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.UploadID) }
func (m *DeleteUploadByIDRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.UploadID)
		}
		return skip, nil
	})
}

type GetFileByIDRequest struct {
	ID             string
	IncludeDeleted bool
}

func (m *GetFileByIDRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	return appendBool(b, 2, m.IncludeDeleted)
}

func (m *GetFileByIDRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeBool(typ, b, &m.IncludeDeleted)
		}
		return skip, nil
	})
}

type GetFileByKeyRequest struct {
	Key string
}

func (m *GetFileByKeyRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.Key) }
func (m *GetFileByKeyRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Key)
		}
		return skip, nil
	})
}

type GetFilesByFolderRequest struct {
	FolderID    string
	OwnerID     string
	FoldersOnly bool
}

func (m *GetFilesByFolderRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.FolderID)
	b = appendString(b, 2, m.OwnerID)
	return appendBool(b, 3, m.FoldersOnly)
}

func (m *GetFilesByFolderRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.FolderID)
		case 2:
			return consumeString(typ, b, &m.OwnerID)
		case 3:
			return consumeBool(typ, b, &m.FoldersOnly)
		}
		return skip, nil
	})
}

type GetFilesByFolderResponse struct {
	Files []*File
}

func (m *GetFilesByFolderResponse) appendWire(b []byte) []byte {
	for _, f := range m.Files {
		b = appendMessage(b, 1, f)
	}
	return b
}

func (m *GetFilesByFolderResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			f := &File{}
			n, err := consumeMessage(typ, b, f)
			if err == nil {
				m.Files = append(m.Files, f)
			}
			return n, err
		}
		return skip, nil
	})
}

type CreateFileRequest struct {
	Key         string
	Name        string
	Size        uint64
	Type        string
	OwnerID     string
	Bucket      string
	Parent      string
	Description string
	TargetID    string
}

func (m *CreateFileRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Key)
	b = appendString(b, 2, m.Name)
	b = appendUint64(b, 3, m.Size)
	b = appendString(b, 4, m.Type)
	b = appendString(b, 5, m.OwnerID)
	b = appendString(b, 6, m.Bucket)
	b = appendString(b, 7, m.Parent)
	b = appendString(b, 8, m.Description)
	return appendString(b, 9, m.TargetID)
}

func (m *CreateFileRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Key)
		case 2:
			return consumeString(typ, b, &m.Name)
		case 3:
			return consumeUint64(typ, b, &m.Size)
		case 4:
			return consumeString(typ, b, &m.Type)
		case 5:
			return consumeString(typ, b, &m.OwnerID)
		case 6:
			return consumeString(typ, b, &m.Bucket)
		case 7:
			return consumeString(typ, b, &m.Parent)
		case 8:
			return consumeString(typ, b, &m.Description)
		case 9:
			return consumeString(typ, b, &m.TargetID)
		}
		return skip, nil
	})
}

type DeleteFileRequest struct {
	ID string
}

func (m *DeleteFileRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.ID) }
func (m *DeleteFileRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.ID)
		}
		return skip, nil
	})
}

type DeleteFileResponse struct {
	Ok bool
}

func (m *DeleteFileResponse) appendWire(b []byte) []byte { return appendBool(b, 1, m.Ok) }
func (m *DeleteFileResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBool(typ, b, &m.Ok)
		}
		return skip, nil
	})
}

// UpdateFileRequest carries a partial update. Nil fields are left as they
// are; a set but empty Parent moves the file to the owner's root.
type UpdateFileRequest struct {
	Name        *string
	Size        *uint64
	OwnerID     string
	Parent      *string
	Bucket      *string
	ID          string
	Key         *string
	Description *string
}

func (m *UpdateFileRequest) appendWire(b []byte) []byte {
	b = appendOptString(b, 1, m.Name)
	b = appendOptUint64(b, 2, m.Size)
	b = appendString(b, 3, m.OwnerID)
	b = appendOptString(b, 4, m.Parent)
	b = appendOptString(b, 5, m.Bucket)
	b = appendString(b, 6, m.ID)
	b = appendOptString(b, 7, m.Key)
	return appendOptString(b, 8, m.Description)
}

func (m *UpdateFileRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeOptString(typ, b, &m.Name)
		case 2:
			return consumeOptUint64(typ, b, &m.Size)
		case 3:
			return consumeString(typ, b, &m.OwnerID)
		case 4:
			return consumeOptString(typ, b, &m.Parent)
		case 5:
			return consumeOptString(typ, b, &m.Bucket)
		case 6:
			return consumeString(typ, b, &m.ID)
		case 7:
			return consumeOptString(typ, b, &m.Key)
		case 8:
			return consumeOptString(typ, b, &m.Description)
		}
		return skip, nil
	})
}

type UpdateFilesRequest struct {
	Updates []*UpdateFileRequest
}

func (m *UpdateFilesRequest) appendWire(b []byte) []byte {
	for _, u := range m.Updates {
		b = appendMessage(b, 1, u)
	}
	return b
}

func (m *UpdateFilesRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			u := &UpdateFileRequest{}
			n, err := consumeMessage(typ, b, u)
			if err == nil {
				m.Updates = append(m.Updates, u)
			}
			return n, err
		}
		return skip, nil
	})
}

type UpdateFailure struct {
	ID      string
	Reason  string
	Message string
}

func (m *UpdateFailure) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Reason)
	return appendString(b, 3, m.Message)
}

func (m *UpdateFailure) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.Reason)
		case 3:
			return consumeString(typ, b, &m.Message)
		}
		return skip, nil
	})
}

type UpdateFilesResponse struct {
	Updated []string
	Failed  []*UpdateFailure
}

func (m *UpdateFilesResponse) appendWire(b []byte) []byte {
	for _, id := range m.Updated {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, id)
	}
	for _, f := range m.Failed {
		b = appendMessage(b, 2, f)
	}
	return b
}

func (m *UpdateFilesResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			var id string
			n, err := consumeString(typ, b, &id)
			if err == nil {
				m.Updated = append(m.Updated, id)
			}
			return n, err
		case 2:
			f := &UpdateFailure{}
			n, err := consumeMessage(typ, b, f)
			if err == nil {
				m.Failed = append(m.Failed, f)
			}
			return n, err
		}
		return skip, nil
	})
}

type IsAllowedRequest struct {
	FileID string
	UserID string
}

func (m *IsAllowedRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.FileID)
	return appendString(b, 2, m.UserID)
}

func (m *IsAllowedRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.FileID)
		case 2:
			return consumeString(typ, b, &m.UserID)
		}
		return skip, nil
	})
}

type IsAllowedResponse struct {
	Allowed bool
}

func (m *IsAllowedResponse) appendWire(b []byte) []byte { return appendBool(b, 1, m.Allowed) }
func (m *IsAllowedResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBool(typ, b, &m.Allowed)
		}
		return skip, nil
	})
}
