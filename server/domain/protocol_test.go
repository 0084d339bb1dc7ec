package domain

import (
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	original := &Header{
		Version:   1,
		SessionID: [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		Seq:       100,
		Length:    256,
		Timestamp: 1234567890,
	}

	encoded := original.Encode()
	if len(encoded) != HeaderSize {
		t.Errorf("encoded size = %d, want %d", len(encoded), HeaderSize)
	}

	decoded, err := ParseHeader(encoded)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	if *decoded != *original {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

func TestPayloadHeaderRoundTrip(t *testing.T) {
	original := &PayloadHeader{
		DataType: DataTypeControl,
		SubType:  uint8(ControlSubTypeJoin),
	}

	encoded := original.Encode()
	if len(encoded) != PayloadHeaderSize {
		t.Errorf("encoded size = %d, want %d", len(encoded), PayloadHeaderSize)
	}

	decoded, err := ParsePayloadHeader(encoded)
	if err != nil {
		t.Fatalf("ParsePayloadHeader failed: %v", err)
	}

	if *decoded != *original {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

func TestInputMessageLayout(t *testing.T) {
	sessionID := NewSessionID()
	data := EncodeInputMessage(sessionID, 7, KeyFire|KeyReload)

	if len(data) != HeaderSize+PayloadHeaderSize+InputPayloadSize {
		t.Fatalf("message size = %d, want %d", len(data), HeaderSize+PayloadHeaderSize+InputPayloadSize)
	}

	header, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if header.SessionID != sessionID.Bytes() {
		t.Errorf("SessionID = %v, want %v", header.SessionID, sessionID.Bytes())
	}
	if header.Seq != 7 {
		t.Errorf("Seq = %d, want 7", header.Seq)
	}
	if header.Length != PayloadHeaderSize+InputPayloadSize {
		t.Errorf("Length = %d, want %d", header.Length, PayloadHeaderSize+InputPayloadSize)
	}

	payloadHeader, err := ParsePayloadHeader(data[HeaderSize:])
	if err != nil {
		t.Fatalf("ParsePayloadHeader failed: %v", err)
	}
	if payloadHeader.DataType != DataTypeInput {
		t.Errorf("DataType = %d, want %d", payloadHeader.DataType, DataTypeInput)
	}

	input, err := ParseInputPayload(data[HeaderSize+PayloadHeaderSize:])
	if err != nil {
		t.Fatalf("ParseInputPayload failed: %v", err)
	}
	if input.KeyMask != KeyFire|KeyReload {
		t.Errorf("KeyMask = %b, want %b", input.KeyMask, KeyFire|KeyReload)
	}
}

func TestControlMessages(t *testing.T) {
	sessionID := NewSessionID()

	tests := []struct {
		name string
		data []byte
		want ControlSubType
	}{
		{"join", EncodeJoinMessage(sessionID), ControlSubTypeJoin},
		{"leave", EncodeLeaveMessage(sessionID), ControlSubTypeLeave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.data) != HeaderSize+PayloadHeaderSize {
				t.Fatalf("message size = %d, want %d", len(tt.data), HeaderSize+PayloadHeaderSize)
			}
			ph, err := ParsePayloadHeader(tt.data[HeaderSize:])
			if err != nil {
				t.Fatalf("ParsePayloadHeader failed: %v", err)
			}
			if ph.DataType != DataTypeControl {
				t.Errorf("DataType = %d, want %d", ph.DataType, DataTypeControl)
			}
			if ControlSubType(ph.SubType) != tt.want {
				t.Errorf("SubType = %d, want %d", ph.SubType, tt.want)
			}
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	original := &Position{
		X: 1.0, Y: 2.0, Z: 3.0,
		QX: 0.0, QY: 0.707, QZ: 0.0, QW: 0.707,
	}

	encoded := original.Encode()
	if len(encoded) != PositionSize {
		t.Errorf("encoded size = %d, want %d", len(encoded), PositionSize)
	}

	decoded, err := ParsePosition(encoded)
	if err != nil {
		t.Fatalf("ParsePosition failed: %v", err)
	}
	if *decoded != *original {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

func TestShotBatchRoundTrip(t *testing.T) {
	events := []ShotEvent{
		{
			ProjectileID: [16]byte{1},
			OwnerID:      [16]byte{2},
			Position:     Position{X: 1, Y: 1.5, Z: 0, QW: 1},
		},
		{
			ProjectileID: [16]byte{3},
			OwnerID:      [16]byte{2},
			Position:     Position{X: -4, Y: 1.5, Z: 10, QY: 1},
		},
	}

	encoded, err := EncodeShotBatch(events)
	if err != nil {
		t.Fatalf("EncodeShotBatch failed: %v", err)
	}
	if len(encoded) != 2+len(events)*ShotEventSize {
		t.Fatalf("encoded size = %d, want %d", len(encoded), 2+len(events)*ShotEventSize)
	}

	decoded, err := ParseShotBatch(encoded)
	if err != nil {
		t.Fatalf("ParseShotBatch failed: %v", err)
	}
	if len(decoded) != len(events) {
		t.Fatalf("len = %d, want %d", len(decoded), len(events))
	}
	for i := range events {
		if decoded[i] != events[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, decoded[i], events[i])
		}
	}
}

func TestShotBatchEmpty(t *testing.T) {
	encoded, err := EncodeShotBatch(nil)
	if err != nil {
		t.Fatalf("EncodeShotBatch failed: %v", err)
	}
	decoded, err := ParseShotBatch(encoded)
	if err != nil {
		t.Fatalf("ParseShotBatch failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("len = %d, want 0", len(decoded))
	}
}

func TestEncodeShotBatchLimit(t *testing.T) {
	if MaxShotsPerBatch != 1092 {
		t.Fatalf("MaxShotsPerBatch = %d, want 1092", MaxShotsPerBatch)
	}
	full, err := EncodeShotBatch(make([]ShotEvent, MaxShotsPerBatch))
	if err != nil {
		t.Fatalf("EncodeShotBatch at limit failed: %v", err)
	}
	if len(full) > MaxPayloadSize {
		t.Errorf("batch size = %d, exceeds %d", len(full), MaxPayloadSize)
	}
	if _, err := EncodeShotBatch(make([]ShotEvent, MaxShotsPerBatch+1)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
	if _, err := EncodeMessage(SessionID{}, 0, DataTypeShot, 0, make([]byte, MaxPayloadSize+1)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge from EncodeMessage, got %v", err)
	}
}

func TestEncodeShotMessagesSplitsAtLimit(t *testing.T) {
	tests := []struct {
		name   string
		shots  int
		counts []int
	}{
		{"empty", 0, nil},
		{"at limit", MaxShotsPerBatch, []int{MaxShotsPerBatch}},
		{"one over", MaxShotsPerBatch + 1, []int{MaxShotsPerBatch, 1}},
		{"max projectiles", 4096, []int{MaxShotsPerBatch, MaxShotsPerBatch, MaxShotsPerBatch, 820}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]ShotEvent, tt.shots)
			for i := range events {
				events[i].ProjectileID[0] = byte(i)
				events[i].ProjectileID[1] = byte(i >> 8)
			}

			messages := EncodeShotMessages(7, events)
			if len(messages) != len(tt.counts) {
				t.Fatalf("messages = %d, want %d", len(messages), len(tt.counts))
			}
			var decoded []ShotEvent
			for i, data := range messages {
				header, err := ParseHeader(data)
				if err != nil {
					t.Fatalf("ParseHeader failed: %v", err)
				}
				if header.Seq != uint16(7+i) {
					t.Errorf("message %d seq = %d, want %d", i, header.Seq, 7+i)
				}
				if int(header.Length) != len(data)-HeaderSize {
					t.Errorf("message %d length = %d, want %d", i, header.Length, len(data)-HeaderSize)
				}
				payloadHeader, err := ParsePayloadHeader(data[HeaderSize:])
				if err != nil {
					t.Fatalf("ParsePayloadHeader failed: %v", err)
				}
				if payloadHeader.DataType != DataTypeShot {
					t.Errorf("DataType = %d, want %d", payloadHeader.DataType, DataTypeShot)
				}
				batch, err := ParseShotBatch(data[HeaderSize+PayloadHeaderSize:])
				if err != nil {
					t.Fatalf("ParseShotBatch failed: %v", err)
				}
				if len(batch) != tt.counts[i] {
					t.Errorf("message %d shots = %d, want %d", i, len(batch), tt.counts[i])
				}
				decoded = append(decoded, batch...)
			}
			for i := range events {
				if decoded[i] != events[i] {
					t.Fatalf("event[%d] out of order", i)
				}
			}
		})
	}
}

func TestParseShotBatchTruncated(t *testing.T) {
	encoded, _ := EncodeShotBatch([]ShotEvent{{}})
	_, err := ParseShotBatch(encoded[:len(encoded)-1])
	if !errors.Is(err, ErrInvalidShotBatchSize) {
		t.Errorf("expected ErrInvalidShotBatchSize, got %v", err)
	}
}

func TestParseInvalidSizes(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
		want  error
	}{
		{"header", func() error { _, err := ParseHeader(make([]byte, HeaderSize-1)); return err }, ErrInvalidHeaderSize},
		{"payload header", func() error { _, err := ParsePayloadHeader(make([]byte, 1)); return err }, ErrInvalidPayloadSize},
		{"position", func() error { _, err := ParsePosition(make([]byte, PositionSize-1)); return err }, ErrInvalidPositionSize},
		{"input", func() error { _, err := ParseInputPayload(make([]byte, 2)); return err }, ErrInvalidInputPayloadSize},
		{"shot batch", func() error { _, err := ParseShotBatch(make([]byte, 1)); return err }, ErrInvalidShotBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.parse(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
