package domain

import "github.com/google/uuid"

// SessionID はルームに参加した操作主体 (プレイヤーまたはボット) を識別します。
type SessionID uuid.UUID

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func SessionIDFromBytes(b [16]byte) SessionID {
	return SessionID(b)
}

func (s SessionID) Bytes() [16]byte {
	return [16]byte(s)
}

func (s SessionID) String() string {
	return uuid.UUID(s).String()
}

func (s SessionID) IsEmpty() bool {
	return s == SessionID{}
}
