package proto

import "google.golang.org/protobuf/encoding/protowire"

type GetOwnerQuotaRequest struct {
	OwnerID string
}

func (m *GetOwnerQuotaRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.OwnerID) }
func (m *GetOwnerQuotaRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.OwnerID)
		}
		return skip, nil
	})
}

// GetOwnerQuotaResponse reports sizes in bytes. Field 3 is reserved.
type GetOwnerQuotaResponse struct {
	OwnerID string
	Limit   uint64
	Used    uint64
}

func (m *GetOwnerQuotaResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OwnerID)
	b = appendUint64(b, 2, m.Limit)
	return appendUint64(b, 4, m.Used)
}

func (m *GetOwnerQuotaResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.OwnerID)
		case 2:
			return consumeUint64(typ, b, &m.Limit)
		case 4:
			return consumeUint64(typ, b, &m.Used)
		}
		return skip, nil
	})
}

type IsAllowedToGetQuotaRequest struct {
	RequestingUser string
	OwnerID        string
}

func (m *IsAllowedToGetQuotaRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.RequestingUser)
	return appendString(b, 2, m.OwnerID)
}

func (m *IsAllowedToGetQuotaRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.RequestingUser)
		case 2:
			return consumeString(typ, b, &m.OwnerID)
		}
		return skip, nil
	})
}

type IsAllowedToGetQuotaResponse struct {
	Allowed bool
}

func (m *IsAllowedToGetQuotaResponse) appendWire(b []byte) []byte { return appendBool(b, 1, m.Allowed) }
func (m *IsAllowedToGetQuotaResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBool(typ, b, &m.Allowed)
		}
		return skip, nil
	})
}

// UpdateQuotaRequest adds Size (which may be negative) to the owner's used
// space.
type UpdateQuotaRequest struct {
	OwnerID string
	Size    int64
}

func (m *UpdateQuotaRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.OwnerID)
	return appendInt64(b, 2, m.Size)
}

func (m *UpdateQuotaRequest) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.OwnerID)
		case 2:
			return consumeInt64(typ, b, &m.Size)
		}
		return skip, nil
	})
}

type UpdateQuotaResponse struct {
	Success bool
}

func (m *UpdateQuotaResponse) appendWire(b []byte) []byte { return appendBool(b, 1, m.Success) }
func (m *UpdateQuotaResponse) consumeWire(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBool(typ, b, &m.Success)
		}
		return skip, nil
	})
}
