package api

import (
	"bytes"

	"github.com/battlesnakeio/arena/rules"
	"github.com/vmihailenco/msgpack/v5"
)

// Frames on the socket are msgpack maps keyed by the same names as the JSON
// API.
const frameTag = "json"

// EncodeFrame packs a snapshot for the socket.
func EncodeFrame(frame *rules.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(frameTag)
	if err := enc.Encode(frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFrame unpacks a snapshot received from the socket.
func DecodeFrame(data []byte) (*rules.Snapshot, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(frameTag)
	frame := &rules.Snapshot{}
	if err := dec.Decode(frame); err != nil {
		return nil, err
	}
	return frame, nil
}
