// Package msgs defines the events a station publishes for monitoring.
package msgs

import (
	"github.com/golang/protobuf/proto"
)

// StationStatus reflects the state of a station after a tick which
// changed it.
type StationStatus struct {
	Unit     string `protobuf:"bytes,1,opt,name=unit,proto3" json:"unit,omitempty"`
	Channel  int32  `protobuf:"varint,2,opt,name=channel,proto3" json:"channel,omitempty"`
	Queued   int32  `protobuf:"varint,3,opt,name=queued,proto3" json:"queued,omitempty"`
	Buffer   string `protobuf:"bytes,4,opt,name=buffer,proto3" json:"buffer,omitempty"`
	Preview  string `protobuf:"bytes,5,opt,name=preview,proto3" json:"preview,omitempty"`
	Sent     uint64 `protobuf:"varint,6,opt,name=sent,proto3" json:"sent,omitempty"`
	Received uint64 `protobuf:"varint,7,opt,name=received,proto3" json:"received,omitempty"`
	Shown    uint64 `protobuf:"varint,8,opt,name=shown,proto3" json:"shown,omitempty"`
	LastSent string `protobuf:"bytes,9,opt,name=last_sent,proto3" json:"last_sent,omitempty"`
	Dropped  uint64 `protobuf:"varint,10,opt,name=dropped,proto3" json:"dropped,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *StationStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StationStatus) Reset() { *m = StationStatus{} }

// String implements proto.Message.
func (m *StationStatus) String() string { return proto.CompactTextString(m) }

// Encode serializes the status.
func (m *StationStatus) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeStationStatus parses a serialized status.
func DecodeStationStatus(data []byte) (*StationStatus, error) {
	var m StationStatus
	if err := proto.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
