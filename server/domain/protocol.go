package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// バイトオーダー: リトルエンディアン
var byteOrder = binary.LittleEndian

const (
	HeaderSize        = 25
	PayloadHeaderSize = 2
	// MaxPayloadSize は Header.Length (u16) に収まるペイロードの最大長です。
	MaxPayloadSize    = math.MaxUint16 - PayloadHeaderSize
)

// Header はメッセージヘッダー (25バイト)
//
//	version    u8      (1)
//	sessionID  [16]byte (16)
//	seq        u16     (2)
//	length     u16     (2)  - ペイロード長
//	timestamp  u32     (4)
type Header struct {
	Version   uint8
	SessionID [16]byte
	Seq       uint16
	Length    uint16
	Timestamp uint32
}

// DataType はメッセージの種別
type DataType uint8

const (
	DataTypeInput   DataType = 1
	DataTypeControl DataType = 4
	DataTypeShot    DataType = 6
)

// ControlSubType はcontrolメッセージのサブタイプ
type ControlSubType uint8

const (
	ControlSubTypeJoin  ControlSubType = 1
	ControlSubTypeLeave ControlSubType = 2
)

// PayloadHeader はペイロードヘッダー (2バイト)
//
//	datatype  u8 (1)
//	subtype   u8 (1)
type PayloadHeader struct {
	DataType DataType
	SubType  uint8
}

var (
	ErrInvalidHeaderSize       = errors.New("invalid header size")
	ErrInvalidPayloadSize      = errors.New("invalid payload size")
	ErrInvalidPositionSize     = errors.New("invalid position size")
	ErrInvalidInputPayloadSize = errors.New("invalid input payload size")
	ErrInvalidShotBatchSize    = errors.New("invalid shot batch size")
	ErrPayloadTooLarge         = errors.New("payload too large")
)

// ParseHeader はバイト列からHeaderをパースする
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	var sessionID [16]byte
	copy(sessionID[:], data[1:17])

	return &Header{
		Version:   data[0],
		SessionID: sessionID,
		Seq:       byteOrder.Uint16(data[17:19]),
		Length:    byteOrder.Uint16(data[19:21]),
		Timestamp: byteOrder.Uint32(data[21:25]),
	}, nil
}

// Encode はHeaderをバイト列にエンコードする
func (h *Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	data[0] = h.Version
	copy(data[1:17], h.SessionID[:])
	byteOrder.PutUint16(data[17:19], h.Seq)
	byteOrder.PutUint16(data[19:21], h.Length)
	byteOrder.PutUint32(data[21:25], h.Timestamp)
	return data
}

// ParsePayloadHeader はバイト列からPayloadHeaderをパースする
func ParsePayloadHeader(data []byte) (*PayloadHeader, error) {
	if len(data) < PayloadHeaderSize {
		return nil, ErrInvalidPayloadSize
	}

	return &PayloadHeader{
		DataType: DataType(data[0]),
		SubType:  data[1],
	}, nil
}

// Encode はPayloadHeaderをバイト列にエンコードする
func (p *PayloadHeader) Encode() []byte {
	data := make([]byte, PayloadHeaderSize)
	data[0] = byte(p.DataType)
	data[1] = byte(p.SubType)
	return data
}

// EncodeMessage はヘッダーとペイロードヘッダーを付けてメッセージをエンコードする
// payload は MaxPayloadSize 以下でなければならない
func EncodeMessage(sessionID SessionID, seq uint16, dataType DataType, subType uint8, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}
	header := Header{
		Version:   1,
		SessionID: sessionID.Bytes(),
		Seq:       seq,
		Length:    uint16(PayloadHeaderSize + len(payload)),
		Timestamp: uint32(time.Now().UnixMilli() & 0xFFFFFFFF),
	}
	payloadHeader := PayloadHeader{DataType: dataType, SubType: subType}

	data := make([]byte, 0, HeaderSize+PayloadHeaderSize+len(payload))
	data = append(data, header.Encode()...)
	data = append(data, payloadHeader.Encode()...)
	data = append(data, payload...)
	return data, nil
}

// mustEncodeMessage は長さが固定で上限に達しないメッセージ用
func mustEncodeMessage(sessionID SessionID, seq uint16, dataType DataType, subType uint8, payload []byte) []byte {
	data, err := EncodeMessage(sessionID, seq, dataType, subType, payload)
	if err != nil {
		panic(err)
	}
	return data
}

// EncodeJoinMessage はルーム参加メッセージをエンコードする
func EncodeJoinMessage(sessionID SessionID) []byte {
	return mustEncodeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypeJoin), nil)
}

// EncodeLeaveMessage はルーム離脱メッセージをエンコードする
func EncodeLeaveMessage(sessionID SessionID) []byte {
	return mustEncodeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypeLeave), nil)
}

// InputPayload はユーザー入力 (4バイト)
//
//	keyMask uint32 (4) - キー入力ビットマスク
type InputPayload struct {
	KeyMask uint32
}

// キー入力ビット
const (
	KeyFire   uint32 = 1 << 0 // 押している間射撃
	KeyReload uint32 = 1 << 1
)

// InputPayloadSize はInputPayloadのサイズ
const InputPayloadSize = 4

// ParseInputPayload はバイト列からInputPayloadをパースする
func ParseInputPayload(data []byte) (*InputPayload, error) {
	if len(data) < InputPayloadSize {
		return nil, ErrInvalidInputPayloadSize
	}

	return &InputPayload{
		KeyMask: byteOrder.Uint32(data[0:4]),
	}, nil
}

// Encode はInputPayloadをバイト列にエンコードする
func (i *InputPayload) Encode() []byte {
	data := make([]byte, InputPayloadSize)
	byteOrder.PutUint32(data[0:4], i.KeyMask)
	return data
}

// EncodeInputMessage は入力メッセージをエンコードする
func EncodeInputMessage(sessionID SessionID, seq uint16, keyMask uint32) []byte {
	input := InputPayload{KeyMask: keyMask}
	return mustEncodeMessage(sessionID, seq, DataTypeInput, 0, input.Encode())
}

// PositionSize は Position のサイズ
const PositionSize = 28 // 7 * 4 bytes (7 float32)

// Position は位置・姿勢データ (28バイト)
//
//	x, y, z        float32 (12) - 位置
//	qx, qy, qz, qw float32 (16) - quaternion
type Position struct {
	X, Y, Z        float32 // 位置
	QX, QY, QZ, QW float32 // quaternion
}

// ParsePosition はバイト列からPositionをパースする
func ParsePosition(data []byte) (*Position, error) {
	if len(data) < PositionSize {
		return nil, ErrInvalidPositionSize
	}

	return &Position{
		X:  math.Float32frombits(byteOrder.Uint32(data[0:4])),
		Y:  math.Float32frombits(byteOrder.Uint32(data[4:8])),
		Z:  math.Float32frombits(byteOrder.Uint32(data[8:12])),
		QX: math.Float32frombits(byteOrder.Uint32(data[12:16])),
		QY: math.Float32frombits(byteOrder.Uint32(data[16:20])),
		QZ: math.Float32frombits(byteOrder.Uint32(data[20:24])),
		QW: math.Float32frombits(byteOrder.Uint32(data[24:28])),
	}, nil
}

// Encode はPositionをバイト列にエンコードする
func (p *Position) Encode() []byte {
	data := make([]byte, PositionSize)
	byteOrder.PutUint32(data[0:4], math.Float32bits(p.X))
	byteOrder.PutUint32(data[4:8], math.Float32bits(p.Y))
	byteOrder.PutUint32(data[8:12], math.Float32bits(p.Z))
	byteOrder.PutUint32(data[12:16], math.Float32bits(p.QX))
	byteOrder.PutUint32(data[16:20], math.Float32bits(p.QY))
	byteOrder.PutUint32(data[20:24], math.Float32bits(p.QZ))
	byteOrder.PutUint32(data[24:28], math.Float32bits(p.QW))
	return data
}

// ShotEventSize は ShotEvent のサイズ
const ShotEventSize = 16 + 16 + PositionSize

// ShotEvent は1発の弾の生成イベント (60バイト)
//
//	projectileID [16]byte (16)
//	ownerID      [16]byte (16)
//	position     Position (28) - 発射位置と弾の姿勢
type ShotEvent struct {
	ProjectileID [16]byte
	OwnerID      [16]byte
	Position     Position
}

// Encode はShotEventをバイト列にエンコードする
func (s *ShotEvent) Encode() []byte {
	data := make([]byte, ShotEventSize)
	copy(data[0:16], s.ProjectileID[:])
	copy(data[16:32], s.OwnerID[:])
	copy(data[32:], s.Position.Encode())
	return data
}

// ParseShotEvent はバイト列からShotEventをパースする
func ParseShotEvent(data []byte) (*ShotEvent, error) {
	if len(data) < ShotEventSize {
		return nil, ErrInvalidShotBatchSize
	}
	pos, err := ParsePosition(data[32:])
	if err != nil {
		return nil, err
	}
	ev := &ShotEvent{Position: *pos}
	copy(ev.ProjectileID[:], data[0:16])
	copy(ev.OwnerID[:], data[16:32])
	return ev, nil
}

// MaxShotsPerBatch は1メッセージに収まる ShotEvent の最大数 (1092)
const MaxShotsPerBatch = (MaxPayloadSize - 2) / ShotEventSize

// EncodeShotBatch はShotEventの列をエンコードする
//
//	count  u16 (2)
//	events []ShotEvent (60 * count)
func EncodeShotBatch(events []ShotEvent) ([]byte, error) {
	if len(events) > MaxShotsPerBatch {
		return nil, fmt.Errorf("%w: %d shots > %d", ErrPayloadTooLarge, len(events), MaxShotsPerBatch)
	}
	data := make([]byte, 2, 2+len(events)*ShotEventSize)
	byteOrder.PutUint16(data[0:2], uint16(len(events)))
	for i := range events {
		data = append(data, events[i].Encode()...)
	}
	return data, nil
}

// EncodeShotMessages は1tick分のShotEventを MaxShotsPerBatch ごとのメッセージに分割してエンコードする
// seq は先頭メッセージから1ずつ進む
func EncodeShotMessages(seq uint16, events []ShotEvent) [][]byte {
	var messages [][]byte
	for chunk := range slices.Chunk(events, MaxShotsPerBatch) {
		batch, _ := EncodeShotBatch(chunk)
		messages = append(messages, mustEncodeMessage(SessionID{}, seq, DataTypeShot, 0, batch))
		seq++
	}
	return messages
}

// ParseShotBatch はバイト列からShotEventの列をパースする
func ParseShotBatch(data []byte) ([]ShotEvent, error) {
	if len(data) < 2 {
		return nil, ErrInvalidShotBatchSize
	}
	count := int(byteOrder.Uint16(data[0:2]))
	if len(data) < 2+count*ShotEventSize {
		return nil, ErrInvalidShotBatchSize
	}
	events := make([]ShotEvent, 0, count)
	offset := 2
	for i := 0; i < count; i++ {
		ev, err := ParseShotEvent(data[offset:])
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
		offset += ShotEventSize
	}
	return events, nil
}
